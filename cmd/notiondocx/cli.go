package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output      string `short:"o" default:"notion_export.docx" help:"Path of the .docx file to write"`
	ShowBrowser bool   `help:"Show the browser window while the page loads"`
	Timeout     int    `short:"t" default:"30000" help:"Page load timeout in milliseconds"`
	Verbose     bool   `short:"v" help:"Log progress details to stderr"`
	URL         string `arg:"" required:"" help:"Public Notion page URL"`
}
