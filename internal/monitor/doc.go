// Package monitor implements the live devdash dashboard on Bubble Tea.
//
// The package is a thin shell around app.State: it turns terminal events into
// state operations, forwards refresh and reload requests to the collection
// loop, and renders the state with Lip Gloss. All decisions about focus,
// cursors, layout and the command palette live in package app.
//
// # Architecture
//
// The model follows The Elm Architecture (Model-Update-View):
//
//   - Model: the app.State plus terminal size, the help toggle and the
//     channels of a collect.Loop running in its own goroutine
//   - Update: keys, mouse clicks, window resizes, spinner ticks, loop
//     messages and config-file change notifications
//   - View: header, six panes, footer and any open overlay
//
// # Message Flow
//
//  1. Init arms one command per loop channel and sends an initial RefreshNow
//  2. loadingMsg and snapshotMsg arrive as the loop runs cycles; each handler
//     re-arms its channel wait
//  3. spinnerTickMsg fires every 120ms and advances animations
//  4. configChangedMsg (from the file watcher) reloads config and pushes a
//     ReloadRuntime to the loop
//
// Sends to the loop never block. A full control queue is reported in the
// footer instead.
package monitor
