// Package middleware groups the fiber middleware mounted in front of every feature.
//
//   - rayid: tags each request with a UUID (X-Ray-ID header and the "ray_id" local)
//     so log lines from one request can be correlated.
//   - auth: rejects requests whose X-API-Key header does not match server.api_key.
//     An empty key leaves the API open.
//
// The swagger route is mounted before auth and stays public.
package middleware
