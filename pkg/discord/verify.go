package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Verify checks the Ed25519 signature Discord attaches to every webhook
// request. The signed message is the timestamp header concatenated with
// the raw request body, in that order. Any failure (missing header,
// malformed hex, wrong key, tampered body) yields an error; nothing else
// in the system may look at the payload before this check passes.
func Verify(signature, timestamp string, body []byte, key ed25519.PublicKey) error {
	if signature == "" {
		return fmt.Errorf("signature can not empty")
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return err
	}

	if len(sig) != ed25519.SignatureSize || sig[63]&224 != 0 {
		return fmt.Errorf("signature is not valid")
	}

	if timestamp == "" {
		return fmt.Errorf("timestamp can not empty")
	}

	message := append([]byte(timestamp), body...)
	if !ed25519.Verify(key, message, sig) {
		return fmt.Errorf("signature is not valid")
	}

	return nil
}
