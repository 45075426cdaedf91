package mapper

import (
	"testing"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
)

var allMapperTypes = []contract.MapperType{
	contract.MapperOpenAIChat,
	contract.MapperOpenAIResponse,
	contract.MapperAnthropicChat,
	contract.MapperGeminiChat,
	contract.MapperLlamaChat,
	contract.MapperVercelChat,
	contract.MapperBlackForestLabsImage,
	contract.MapperOpenAIAssistant,
	contract.MapperOpenAIImage,
	contract.MapperOpenAIModeration,
	contract.MapperOpenAIEmbedding,
	contract.MapperOpenAIInstruct,
	contract.MapperOpenAIRealtime,
	contract.MapperVectorDB,
	contract.MapperTool,
	contract.MapperUnknown,
}

func TestRegistryCoversAllTypes(t *testing.T) {
	registry := NewRegistry()
	for _, mapperType := range allMapperTypes {
		if _, ok := registry.Lookup(mapperType); !ok {
			t.Errorf("no adapter registered for %s", mapperType)
		}
	}
	if got := len(registry.Types()); got != len(allMapperTypes) {
		t.Fatalf("registry holds %d types, want %d", got, len(allMapperTypes))
	}
}

func TestRegistryLookupUnknownType(t *testing.T) {
	registry := NewRegistry()
	if _, ok := registry.Lookup(contract.MapperType("nope")); ok {
		t.Fatal("lookup of unregistered type should fail")
	}
}

// Every adapter must be total over the degenerate inputs: empty bodies, null
// bodies, and a pending status.
func TestAdaptersTotalOverDegenerateInputs(t *testing.T) {
	registry := NewRegistry()
	params := []contract.AdapterParams{
		{},
		{Request: []byte("null"), Response: []byte("null")},
		{Request: []byte("{}"), Response: []byte("{}"), StatusCode: 200},
		{Request: []byte(`{"messages":[]}`), StatusCode: 0},
	}
	for _, mapperType := range registry.Types() {
		fn, _ := registry.Lookup(mapperType)
		for _, p := range params {
			if _, err := fn(p); err != nil {
				t.Errorf("%s failed on degenerate input: %v", mapperType, err)
			}
		}
	}
}
