package diag

import "encoding/json"

// wireIssue is the error wire format: { "kind": <snake_case>, "msg": <string> }.
type wireIssue struct {
	Kind string `json:"kind"`
	Msg  string `json:"msg"`
}

// MarshalJSON renders the Issue in its wire form:
// kind is the snake_case taxonomy label; msg is SafeMessage(), never the raw
// Debug-tagged Message, so a Debug issue never leaks user data over the wire.
func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireIssue{Kind: i.kind.String(), Msg: i.SafeMessage()})
}
