package mapper

import (
	"sort"

	"github.com/harunnryd/kiroku/internal/mapper/contract"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/anthropic"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/bfl"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/gemini"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/llama"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/openai"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/tool"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/vectordb"
	"github.com/harunnryd/kiroku/internal/mapper/mappers/vercel"
)

// Fn is the adapter contract: map one raw payload pair to a canonical
// result. Adapters return an error instead of panicking; the orchestrator
// folds both into a diagnostic result.
type Fn func(contract.AdapterParams) (contract.Result, error)

// Registry holds one adapter per MapperType. It covers the whole closed
// type set; a missing entry is a configuration fault, not a runtime case.
type Registry struct {
	mappers map[contract.MapperType]Fn
}

// NewRegistry wires every adapter. Unknown records share the openai-chat
// adapter.
func NewRegistry() *Registry {
	return &Registry{
		mappers: map[contract.MapperType]Fn{
			contract.MapperOpenAIChat:           openai.MapChat,
			contract.MapperOpenAIResponse:       openai.MapResponses,
			contract.MapperAnthropicChat:        anthropic.MapChat,
			contract.MapperGeminiChat:           gemini.MapChat,
			contract.MapperLlamaChat:            llama.MapChat,
			contract.MapperVercelChat:           vercel.MapChat,
			contract.MapperBlackForestLabsImage: bfl.MapImage,
			contract.MapperOpenAIAssistant:      openai.MapAssistant,
			contract.MapperOpenAIImage:          openai.MapImage,
			contract.MapperOpenAIModeration:     openai.MapModeration,
			contract.MapperOpenAIEmbedding:      openai.MapEmbedding,
			contract.MapperOpenAIInstruct:       openai.MapInstruct,
			contract.MapperOpenAIRealtime:       openai.MapRealtime,
			contract.MapperVectorDB:             vectordb.Map,
			contract.MapperTool:                 tool.Map,
			contract.MapperUnknown:              openai.MapChat,
		},
	}
}

// Lookup returns the adapter for a type.
func (r *Registry) Lookup(t contract.MapperType) (Fn, bool) {
	fn, ok := r.mappers[t]
	return fn, ok
}

// Types returns all registered mapper types, sorted.
func (r *Registry) Types() []contract.MapperType {
	types := make([]contract.MapperType, 0, len(r.mappers))
	for t := range r.mappers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
