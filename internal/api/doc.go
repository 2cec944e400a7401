// Package api exposes the integration engine over a JSON HTTP API.
//
// The API is consumed by local tooling and container-host web panels.
// It binds to a loopback or LAN address and additionally rejects any
// request that does not originate from a private subnet.
//
// Endpoints (all under /api/v1):
//
//	GET    /networks/{name}/integration        - status and descriptor
//	POST   /networks/{name}/integration        - create an integration
//	POST   /networks/{name}/integration/repair - re-create missing pieces
//	DELETE /networks/{name}/integration        - tear an integration down
//	GET    /networks/{name}/dnscheck           - probe the gateway resolver
//	POST   /integrations/validate              - pre-flight validation
//	GET    /zones                              - reserved firewall zones
//	GET    /settings                           - current configuration
//	PATCH  /settings                           - partial configuration update
//	GET    /health                             - liveness
//
// Errors use a uniform envelope: {"error": {"code", "message", "details"}}.
package api
