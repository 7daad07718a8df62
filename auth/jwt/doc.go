// Package jwt signs and verifies HMAC bearer tokens for a caller-defined
// claims type.
//
//	type Claims struct {
//	    gojwt.RegisteredClaims
//	    Role string `json:"role"`
//	}
//
//	signer, err := jwt.NewSigner(cfg, func() *Claims { return &Claims{} })
//	token, err := signer.Sign(&Claims{Role: "admin"})
//	claims, err := signer.Verify(token)
package jwt
