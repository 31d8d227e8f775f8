//go:build js && wasm

package main

import (
	"log/slog"

	"github.com/payback159/contactform/pkg/form"
	"github.com/payback159/contactform/pkg/logging"
	"github.com/payback159/contactform/pkg/messages"
	"github.com/payback159/contactform/pkg/wasmdom"
)

func main() {
	logging.InitLogger(slog.LevelInfo)

	page, err := wasmdom.Lookup("contact-form", "toast", "toast-close")
	if err != nil {
		// Never break the page: without the form there is nothing to enhance
		logging.LogWarn("Contact form enhancement disabled", "error", err)
		return
	}

	ctrl := form.NewController(page.Elements(), messages.Default())
	ctrl.Bind(page)

	logging.LogInfo("Contact form enhancement active")

	select {}
}
