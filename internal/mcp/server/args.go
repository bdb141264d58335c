package server

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/crunchtools/gitlab-mcp/pkg/errors"
)

// missingArg is the uniform error for an absent or mistyped required argument.
func missingArg(name string) error {
	return &errors.ValidationError{Field: name, Message: "is required"}
}

// bodyArgs returns the tool arguments with routing keys removed, leaving only
// the fields destined for the request body. Create/update handlers decode the
// remainder under the closed-schema policy, so a stray key is reported to the
// agent instead of silently dropped.
func bodyArgs(request mcp.CallToolRequest, routingKeys ...string) map[string]any {
	args := request.GetArguments()
	body := make(map[string]any, len(args))
	for key, value := range args {
		body[key] = value
	}
	for _, key := range routingKeys {
		delete(body, key)
	}
	return body
}

// pageArgs reads the shared pagination arguments.
func pageArgs(request mcp.CallToolRequest) (page, perPage int) {
	return request.GetInt("page", 0), request.GetInt("per_page", 0)
}
