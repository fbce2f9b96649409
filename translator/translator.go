package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/palettefold/shader"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Translated is a stage rewritten for the current driver.
type Translated struct {
	Code  string
	names map[string]string
}

// MappedName returns the name the translated code uses for a declared
// variable. Names the translator did not report are returned unchanged.
func (t *Translated) MappedName(name string) string {
	if mapped, ok := t.names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// Translate converts a WebGL2 stage into desktop GLSL 4.10, or ESSL when gles
// is set.
func Translate(stage shader.Stage, source string, gles bool) (*Translated, error) {
	tr, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := tr.TranslateShader(source, string(stage), gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	t := &Translated{Code: out.Code, names: make(map[string]string, len(out.Variables))}
	for name, v := range out.Variables {
		t.names[name] = v.MappedName
	}
	return t, nil
}
