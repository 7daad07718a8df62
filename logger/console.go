package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

var levelTags = map[string]struct {
	tag   string
	color color.Attribute
}{
	"debug": {"DBG", color.FgCyan},
	"info":  {"INF", color.FgGreen},
	"warn":  {"WRN", color.FgYellow},
	"error": {"ERR", color.FgRed},
	"fatal": {"FTL", color.FgMagenta},
}

// consoleWriter renders "15:04:05 [MOC][INF] message key:value". The
// bracketed prefix is the first three letters of the service name.
func consoleWriter(out io.Writer, serviceName string, noColor bool) zerolog.ConsoleWriter {
	paint := func(attr color.Attribute, s string) string {
		if noColor {
			return s
		}
		return color.New(attr).Sprint(s)
	}

	prefix := ""
	if len(serviceName) >= 3 && serviceName != "default" {
		prefix = paint(color.FgBlue, "["+strings.ToUpper(serviceName[:3])+"]")
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			lvl := fmt.Sprint(i)
			t, ok := levelTags[lvl]
			if !ok {
				return prefix + "[" + strings.ToUpper(lvl) + "]"
			}
			return prefix + paint(t.color, "["+t.tag+"]")
		},
		FormatFieldName: func(i interface{}) string { return fmt.Sprintf("%s:", i) },
		FormatFieldValue: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
}
