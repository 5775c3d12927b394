// Package viz renders sessions in the terminal with Bubble Tea.
//
//   - [Model]: steps a session from the frame loop and forwards the mouse to
//     the session pointer
//   - [Canvas]: braille sub-pixel canvas with per-cell tint
//   - [Projection]: maps the world viewport onto canvas sub-pixels
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Single step while paused
//	R     - Rebuild the scene
//	T     - Cycle themes
//	?     - Show help overlay
//	Q     - Quit
package viz
