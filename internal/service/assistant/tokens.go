package assistant

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// EstimateTokens counts cl100k_base tokens in text. When the encoding is
// unavailable it falls back to one token per four bytes.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	if enc := tokenizer(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return (len(text) + 3) / 4
}

func tokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
		tk = enc
	})
	return tk
}
