package template

import (
	"fmt"

	"lightnovel-reader/model"
)

const styleCSS = `
body {
  margin: 0 auto;
  padding: 20px;
  box-sizing: border-box;
  font-family: %s;
  font-size: %dpx;
  line-height: %.1f;
  text-align: justify;
  color: #333333;
}

h1 {
  text-align: center;
  font-size: 1.5em;
  margin: 2em auto;
  font-weight: bold;
  color: #2c3e50;
}

p {
  text-indent: 2em;
  margin: 0.8em 0;
}

p.release-date {
  text-indent: 0;
  text-align: center;
  font-size: 0.8em;
  color: #888888;
}
`

// StyleCSS renders the reader stylesheet for the given font preferences.
func StyleCSS(settings model.FontSettings) string {
	settings = settings.Clamp()
	family := `Georgia, "Times New Roman", serif`
	if settings.FontFamily == model.FontSansSerif {
		family = `"Helvetica Neue", Arial, sans-serif`
	}
	return fmt.Sprintf(styleCSS, family, settings.FontSize, settings.LineHeight)
}
