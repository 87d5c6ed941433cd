// Package loader registers features on the fiber application.
//
// A feature bundles a service with the routes exposing it and implements
// Feature. The Manager loads registered features in order, skipping disabled
// ones and refusing duplicate names:
//
//	mgr := loader.NewManager(logger)
//	mgr.Register(identity.NewFeature(svc))
//	if err := mgr.LoadAll(app); err != nil {
//	    return err
//	}
package loader
