package cli

import (
	"text/template"
	"time"

	"github.com/iudanet/synchub/internal/models"
)

const itemTemplate = `
=== Item ===

Key:       {{.Key}}
Value:     {{.Value}}
Timestamp: {{.Timestamp}} ({{millis .Timestamp}})
Origin:    {{origin .Origin}}
`

const syncResultTemplate = `
Pushed:    {{.PushedItems}}
Pulled:    {{.PulledItems}}
Merged:    {{.MergedItems}}
Skipped:   {{.SkippedItems}}
Watermark: {{.Watermark}}
`

var templates = template.Must(template.New("cli").Funcs(template.FuncMap{
	"millis": func(ms int64) string {
		return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano)
	},
	"origin": func(id models.DeviceID) string {
		if id == models.HubDeviceID {
			return "hub"
		}
		return id.String()
	},
}).Parse(`{{define "item"}}` + itemTemplate + `{{end}}{{define "sync"}}` + syncResultTemplate + `{{end}}`))
