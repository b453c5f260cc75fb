// ABOUTME: gRPC metadata keys shared by the proxy and agents.
// ABOUTME: Lives beside the generated code so both sides import one package.

package relay

// AgentIDHeader is the metadata key carrying an agent's identity. The proxy
// sets it as a response header on ConnectAgent; agents echo it on every call.
const AgentIDHeader = "agent-id"
