// Package sealbox combines lossless compression with authenticated
// password-based encryption into a single reversible transform: sealing
// turns a plaintext and a password into a self-describing binary blob, and
// opening recovers the exact plaintext or fails deterministically.
//
// Every blob carries the parameters needed to reverse it — compression and
// cipher identifiers, KDF cost, salt, and nonce — so a blob sealed with one
// configuration opens on any other, as long as the password matches. A
// blob that was altered, truncated, or opened with the wrong password is
// rejected; corrupted plaintext is never returned.
//
// Basic usage:
//
//	sealer, err := sealbox.New("correct horse battery staple")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blob, err := sealer.Seal([]byte("attack at dawn"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := sealer.Open(blob)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(string(plaintext))
package sealbox
