package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Path     string        `env:"KNOWLEDGE_PATH" envDefault:"Instructional Design Principles"`
	Port     int           `env:"PORT" envDefault:"5000"`
	TTL      time.Duration `env:"SESSION_TTL"`
	APIKey   string        `env:"CLAUDE_API_KEY,required"`
	Debug    bool          `env:"DEBUG"`
	internal string        `env:"INTERNAL"`
	NoTag    string
}

type otherConfig struct {
	Port  int    `env:"PORT"`
	Token string `env:"TELEGRAM_TOKEN"`
}

func TestMarshalEnv(t *testing.T) {
	cfg := &sampleConfig{
		TTL:      90 * time.Minute,
		APIKey:   "sk-test",
		internal: "hidden",
		NoTag:    "ignored",
	}

	out, err := MarshalEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"KNOWLEDGE_PATH=\"Instructional Design Principles\"\n"+
		"PORT=5000\n"+
		"SESSION_TTL=1h30m0s\n"+
		"CLAUDE_API_KEY=sk-test\n"+
		"# DEBUG=\n", out)
}

func TestMarshalEnv_MultipleConfigsSkipDuplicateKeys(t *testing.T) {
	out, err := MarshalEnv(&sampleConfig{Port: 8080}, &otherConfig{Port: 9000, Token: "tg"})
	require.NoError(t, err)

	assert.Contains(t, out, "PORT=8080\n")
	assert.NotContains(t, out, "PORT=9000")
	assert.Contains(t, out, "TELEGRAM_TOKEN=tg\n")
}

func TestMarshalEnv_RejectsNonPointer(t *testing.T) {
	_, err := MarshalEnv(sampleConfig{})
	assert.Error(t, err)
}
