package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, tag := range []string{"blob", "onnx", "ir", "paddle", "tf-frozen", "caffe"} {
		format, ok := ParseFormat(tag)
		assert.True(t, ok, tag)
		assert.Equal(t, Format(tag), format)
	}

	_, ok := ParseFormat("tflite")
	assert.False(t, ok)
}

func TestRuleInvariants(t *testing.T) {
	for format, rule := range formatRules {
		assert.Equal(t, format, rule.Format)
		assert.NotEmpty(t, rule.ModelSuffix)

		if rule.Precompiled {
			// Precompiled artifacts never carry a companion file.
			assert.True(t, rule.SelfContained(), format)
		}
	}
}

func TestRuleForModelSuffix(t *testing.T) {
	tests := []struct {
		suffix string
		format Format
	}{
		{".xml", FormatIR},
		{".onnx", FormatONNX},
		{".blob", FormatBlob},
		{".pdmodel", FormatPaddle},
		{".pb", FormatTFFrozen},
		{".prototxt", FormatCaffe},
	}

	for _, tt := range tests {
		rule, ok := ruleForModelSuffix(tt.suffix)
		require.True(t, ok, tt.suffix)
		assert.Equal(t, tt.format, rule.Format)
	}

	_, ok := ruleForModelSuffix(".caffemodel")
	assert.False(t, ok)
}

func TestAcceptedModelSuffixesOrder(t *testing.T) {
	assert.Equal(t,
		[]string{".blob", ".onnx", ".xml", ".pdmodel", ".pb", ".prototxt"},
		AcceptedModelSuffixes(),
	)
}
