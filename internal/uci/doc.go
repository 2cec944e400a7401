// Package uci adapts the declarative host configuration store behind a
// small Store interface.
//
// The store is organized into domains ("network", "firewall", "dhcp"),
// each holding typed sections with scalar or list options. This package
// normalizes both option shapes to the list-valued Value type, so callers
// never branch on scalar versus list.
//
// Mutations are staged: nothing reaches persistent storage before Save,
// and nothing reaches the running system before Apply. Apply carries a
// rollback window so that a change which cuts connectivity reverts on its
// own.
//
// ShellStore is the production implementation, driving the uci and ubus
// command line tools through a sysexec.Runner. Tests use the in-memory
// store from the mocks package instead.
package uci
