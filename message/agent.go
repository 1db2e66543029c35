package message

import (
	"fmt"
	"runtime"
	"sync"

	"msgsend/schema"
)

// Version is the library version reported in the default agent.
var Version = "0.1.0"

// Agent describes the sending client.
type Agent struct {
	SDKVersion string `json:"sdkVersion"`
	OSPlatform string `json:"osPlatform"`
}

// AgentShape decodes an agent object. Each missing field gets its own
// default, so a partial agent keeps what the caller supplied.
var AgentShape = schema.Struct("Agent",
	schema.Optional("sdkVersion", schema.String, func(a *Agent, v string) { a.SDKVersion = v }).
		WithDefault(func(a *Agent) { a.SDKVersion = "go/" + Version }),
	schema.Optional("osPlatform", schema.String, func(a *Agent, v string) { a.OSPlatform = v }).
		WithDefault(func(a *Agent) { a.OSPlatform = runtime.GOOS + " | " + runtime.Version() }),
)

var defaultAgent = sync.OnceValue(func() Agent {
	agent, err := AgentShape.Decode("agent", map[string]any{})
	if err != nil {
		panic(fmt.Sprintf("message: default agent: %v", err))
	}
	return agent
})

// DefaultAgent returns the agent used when a request omits one. It is
// computed on first use and never changes afterwards. A broken agent shape
// panics; call it during start-up to surface that before serving requests.
func DefaultAgent() Agent {
	return defaultAgent()
}

// agentField is the request field that falls back to DefaultAgent.
func agentField[T any](set func(*T, Agent)) schema.Field[T] {
	return schema.Optional("agent", AgentShape.Decoder(), set).
		WithDefault(func(t *T) { set(t, DefaultAgent()) })
}
