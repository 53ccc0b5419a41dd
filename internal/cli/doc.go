// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the estatechat command line.
//
// Running estatechat with no subcommand starts the TUI. The other commands
// talk to the same backend without a full screen UI, which makes them
// usable from scripts:
//
//	estatechat                          start the TUI
//	estatechat ask "compare wakad and baner"
//	estatechat query "best area under 8000 per sqft"
//	estatechat report wakad --format csv --out ./exports
//	estatechat compare wakad baner --chart
//	estatechat growth hinjewadi --format json
//	estatechat chat                     line-mode chat with input history
//	estatechat open "/compare?areas=wakad,baner"
//	estatechat history show|clear|export
//	estatechat config show|path|init
//	estatechat version
//
// Output goes through one renderer: a boxed table and summary on a
// terminal, or json, csv, md or xlsx when --format asks for it.
package cli
