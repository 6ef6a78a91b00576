package model

// Format identifies a supported model interchange format.
type Format string

const (
	// FormatBlob is a precompiled, self-contained model blob.
	FormatBlob Format = "blob"

	// FormatONNX is the ONNX interchange format.
	FormatONNX Format = "onnx"

	// FormatIR is the OpenVINO intermediate representation (xml + bin pair).
	FormatIR Format = "ir"

	// FormatPaddle is the PaddlePaddle inference format (pdmodel + pdiparams pair).
	FormatPaddle Format = "paddle"

	// FormatTFFrozen is a TensorFlow frozen graph. Weights are baked into
	// the graph, so no companion file is needed.
	FormatTFFrozen Format = "tf-frozen"

	// FormatCaffe is the Caffe format (prototxt + caffemodel pair).
	FormatCaffe Format = "caffe"
)

// FormatRule describes how a format lays out its artifacts on disk.
type FormatRule struct {
	Format        Format
	ModelSuffix   string
	WeightsSuffix string // empty for self-contained formats
	Precompiled   bool

	// companion overrides the default same-stem/glob weights derivation.
	// Paddle reads its params file from a dedicated configuration field
	// instead of deriving it from the model file name.
	companion companionResolver
}

// SelfContained reports whether the format carries its weights in the
// primary file and needs no companion.
func (r FormatRule) SelfContained() bool {
	return r.WeightsSuffix == ""
}

// formatRules is the fixed format table. It must never be mutated at
// runtime; all lookups go through the accessor functions below.
var formatRules = map[Format]FormatRule{
	FormatBlob:     {Format: FormatBlob, ModelSuffix: ".blob", Precompiled: true},
	FormatONNX:     {Format: FormatONNX, ModelSuffix: ".onnx"},
	FormatIR:       {Format: FormatIR, ModelSuffix: ".xml", WeightsSuffix: ".bin"},
	FormatPaddle:   {Format: FormatPaddle, ModelSuffix: ".pdmodel", WeightsSuffix: ".pdiparams", companion: paramsFromRequest},
	FormatTFFrozen: {Format: FormatTFFrozen, ModelSuffix: ".pb"},
	FormatCaffe:    {Format: FormatCaffe, ModelSuffix: ".prototxt", WeightsSuffix: ".caffemodel"},
}

// searchOrder is the fixed priority used when no format is declared,
// mirroring typical deployment frequency.
var searchOrder = []Format{
	FormatBlob,
	FormatONNX,
	FormatIR,
	FormatPaddle,
	FormatTFFrozen,
	FormatCaffe,
}

// ParseFormat validates a declared format tag.
func ParseFormat(tag string) (Format, bool) {
	f := Format(tag)
	_, ok := formatRules[f]
	return f, ok
}

// RuleFor returns the rule for a format tag.
func RuleFor(format Format) (FormatRule, bool) {
	rule, ok := formatRules[format]
	return rule, ok
}

// ruleForModelSuffix maps a primary-file extension back to its format rule.
func ruleForModelSuffix(suffix string) (FormatRule, bool) {
	for _, format := range searchOrder {
		rule := formatRules[format]
		if rule.ModelSuffix == suffix {
			return rule, true
		}
	}

	return FormatRule{}, false
}

// AcceptedModelSuffixes returns the primary-file extensions in priority order.
func AcceptedModelSuffixes() []string {
	suffixes := make([]string, 0, len(searchOrder))
	for _, format := range searchOrder {
		suffixes = append(suffixes, formatRules[format].ModelSuffix)
	}

	return suffixes
}
