/*

Package custody defines interfaces used throughout the app, such as: addresses,
derived program addresses, storage, transactions and handlers.
Look into this package to get a brief overview of design decisions made around
interfaces and extension building blocks.

*/

package custody
