package flow

import "strings"

// BlockType is the block type tag stored on a node, such as "Code" or
// "OnlineLLM". The engine treats it as opaque apart from the capabilities of
// the [Kind] it resolves to.
type BlockType string

// Kind resolves t to a known block kind, or [KindOther].
func (t BlockType) Kind() Kind {
	if k, ok := kindsByTag[t]; ok {
		return k
	}
	return KindOther
}

// Kind is the closed enumeration of block kinds.
type Kind int

// Block kinds. Adding a kind requires an entry in the kinds table below.
const (
	KindOther Kind = iota
	KindEntry
	KindCode
	KindCustomScript
	KindStandaloneFunction
	KindSubModule
	KindSubGraph
	KindFormatter
	KindJoinFormatter
	KindAggregator
	KindLocalLLM
	KindSharedModel
	KindOnlineLLM
	KindVQA
	KindSD
	KindTTS
	KindSTT
	KindOCR
	KindQuestionClassifier
	KindHTTPRequest
	KindFunctionCall
	KindToolsForLLM
	KindSQLCall
	KindRetriever
	KindReranker
	KindWrap
	KindSwitch
	KindIfs
	KindLoop
	KindTemplate
	KindParameterExtractor
	kindCount
)

// Capability is a behavioural flag attached to a [Kind].
type Capability uint8

const (
	// CapEntry marks the block where execution starts.
	CapEntry Capability = 1 << iota
	// CapIndependent marks blocks that can be run on their own.
	CapIndependent
	// CapContainer marks blocks that host nested child blocks.
	CapContainer
	// CapBranching marks blocks that route execution to one of several handles.
	CapBranching
	// CapModel marks blocks backed by a model.
	CapModel
)

type kindInfo struct {
	tag  BlockType
	caps Capability
}

// kinds is indexed by Kind.
var kinds = [kindCount]kindInfo{
	KindOther:              {"Other", 0},
	KindEntry:              {"Start", CapEntry},
	KindCode:               {"Code", CapIndependent},
	KindCustomScript:       {"CustomScript", CapIndependent},
	KindStandaloneFunction: {"StandaloneFunction", CapIndependent},
	KindSubModule:          {"SubModule", CapIndependent},
	KindSubGraph:           {"SubGraph", CapContainer},
	KindFormatter:          {"Formatter", 0},
	KindJoinFormatter:      {"JoinFormatter", 0},
	KindAggregator:         {"Aggregator", 0},
	KindLocalLLM:           {"LocalLLM", CapModel},
	KindSharedModel:        {"SharedModel", CapModel},
	KindOnlineLLM:          {"OnlineLLM", CapModel},
	KindVQA:                {"VQA", CapModel},
	KindSD:                 {"SD", CapModel},
	KindTTS:                {"TTS", CapModel},
	KindSTT:                {"STT", CapModel},
	KindOCR:                {"OCR", CapModel},
	KindQuestionClassifier: {"QuestionClassifier", CapModel | CapBranching},
	KindHTTPRequest:        {"HttpRequest", 0},
	KindFunctionCall:       {"FunctionCall", 0},
	KindToolsForLLM:        {"ToolsForLLM", 0},
	KindSQLCall:            {"SqlCall", 0},
	KindRetriever:          {"Retriever", 0},
	KindReranker:           {"Reranker", CapModel},
	KindWrap:               {"Wrap", 0},
	KindSwitch:             {"Switch", CapBranching},
	KindIfs:                {"Ifs", CapBranching},
	KindLoop:               {"Loop", CapContainer},
	KindTemplate:           {"Template", 0},
	KindParameterExtractor: {"ParameterExtractor", CapModel},
}

var kindsByTag = func() map[BlockType]Kind {
	m := make(map[BlockType]Kind, kindCount)
	for k := KindEntry; k < kindCount; k++ {
		m[kinds[k].tag] = k
	}
	return m
}()

// EntryBlockType is the block type of the graph entry node.
const EntryBlockType BlockType = "Start"

// Tag returns the canonical block type string of k.
func (k Kind) Tag() BlockType {
	if k < 0 || k >= kindCount {
		return kinds[KindOther].tag
	}
	return kinds[k].tag
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k.Tag()) }

// Has reports whether k carries capability c.
func (k Kind) Has(c Capability) bool {
	if k < 0 || k >= kindCount {
		return false
	}
	return kinds[k].caps&c != 0
}

// Kinds returns every known kind except [KindOther], in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindEntry; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Execution mode values that let any block run on its own.
var independentModes = map[string]bool{
	"independent": true,
	"standalone":  true,
}

// CanRunIndependently reports whether n can be executed without running the
// rest of the workflow. This holds for independent kinds, for blocks whose
// execution_mode data field asks for it, and for blocks configured with the
// config__can_run_by_single flag.
func CanRunIndependently(n Node) bool {
	if n.Kind().Has(CapIndependent) {
		return true
	}
	if mode, ok := n.Data.Extra["execution_mode"].(string); ok && independentModes[strings.ToLower(mode)] {
		return true
	}
	return truthy(n.Data.Extra["config__can_run_by_single"])
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false" && t != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}
