package model

// Session is the signed-in identity as mirrored from the identity
// provider. A nil *Session represents a signed-out state.
type Session struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}
