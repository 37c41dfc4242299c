/*
Package system implements native accounts.

Every address may hold an account with a lamport balance, an owner program
and opaque data. Only the owner program interprets the data. An account with
no lamports and no data does not exist.

Accounts that hold data must keep a lamport balance that makes them exempt
from rent, as defined by the Rent configuration.
*/
package system
