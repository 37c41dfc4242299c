/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration under a single key derived from the
extension name. The value is loaded from the "conf" section of the genesis
file and validated before it is written.

*/
package gconf
