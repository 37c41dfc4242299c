/*
Package sigs provides basic authentication: it verifies the ed25519
signatures on the transaction and records the signers in the context.

Programs may also act for addresses derived from their own program id. Such
derived signers are added to the context with WithDerivedSigner only after
the derivation proof is checked.
*/
package sigs
