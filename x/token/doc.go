/*
Package token implements the fungible asset ledger.

A token account is a system account owned by the token program. Its data
holds the mint, the authority allowed to move the balance and the balance
itself. Every operation that moves or closes a balance requires the
account authority to be authorized in the context, either by a verified
signature or as a derived signer of a program.
*/
package token
