// Package sources holds the player aggregates.
//
// The tree is RootSource -> ManifestSource -> PlayerSource. A PlayerSource owns one
// source sheet and the player fragments built from it. A ManifestSource owns the
// PlayerSources its manifest sheet declares and reconciles them on reload: new keys
// are loaded, removed keys are dropped, and keys whose version token did not
// change are only touched. RootSource merges fragments across every manifest.
//
// Every node implements HasPlayers. Ready(ctx) waits until the node and all of
// its children have finished their current loads. Merged players are memoized in
// a core/cache Store that is cleared whenever the tree changes.
package sources
