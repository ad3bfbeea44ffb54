// Package core implements the call-session lifecycle coordinator and the
// in-app banner manager for a push-to-native-call bridge.
//
// The coordinator decodes inbound push payloads into call invites, drives the
// per-session state machine (ringing → active → ended), and relays user
// actions from the native call UI back to the application over two
// single-listener event channels. The native call UI, the platform
// notification center, and the banner surface are boundary interfaces; core
// never talks to platform primitives directly.
package core
