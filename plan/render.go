package plan

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"wpc/common"
)

// Render serializes the document in the requested format.
func (d *Document) Render(format common.PlanFormat) ([]byte, error) {
	switch format {
	case common.PlanFormatText:
		return d.renderText(), nil
	case common.PlanFormatYaml:
		data, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("unable to marshal plan document: %w", err)
		}
		return data, nil
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

func (d *Document) renderText() []byte {
	buf := new(bytes.Buffer)
	if d.Format != "" {
		fmt.Fprintf(buf, "%s: %s %s\n", d.Source, d.Raw, d.Format)
	} else {
		fmt.Fprintf(buf, "%s: %s\n", d.Source, d.Raw)
	}
	for i := range d.Plans {
		fmt.Fprintf(buf, "  %s\n", d.Plans[i].textLine())
	}
	return buf.Bytes()
}

// textLine renders one display plan as a single geometry line. Rectangles use
// the ImageMagick WxH+X+Y form.
func (p *Plan) textLine() string {
	s := fmt.Sprintf("%s: crop %s zoom %.6g rest %s", p.Display, p.Crop, p.Zoom, p.Rest)
	if p.Fitted != p.Crop {
		s += fmt.Sprintf(" fit %s", p.Fitted)
	}
	return s
}
