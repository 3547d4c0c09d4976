// Package useradmin implements a self-contained user-account module: login,
// registration with email confirmation, and logout, driven by a small
// section-based view layer.
//
// The module is split along the seams of the host framework it replaces:
//
//   - Accounts are persisted through a Bun-backed repository (Account Store).
//   - Raw request values are copied into untyped bags and only reach the
//     workflow engine through a sanitized Whitelist.
//   - The Processor (workflow engine) validates input, drives account state
//     transitions and yields an Outcome: render a section, or redirect.
//   - The HTTP controller dispatches a fixed set of actions and applies the
//     Outcome against the fiber session and view engine.
//
// All collaborators (store, sanitizer, mailer, session, logger) are injected;
// nothing reaches for process-wide state.
package useradmin
