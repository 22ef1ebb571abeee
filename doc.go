// Package arpack reads and writes archives in the Unix "common ar" format: the global header
// "!<arch>\n", then for each member a 60 byte header of fixed-width ASCII fields followed by the
// member's content, padded to an even length.
//
// Encode and Decode work on whole archives in memory; Writer and Reader stream them. Both follow
// the same layout and report the same errors, and are available behind the Codec interface.
//
// Long file name tables and symbol tables are not supported: member names must fit the 16 byte
// name field together with their trailing '/'.
package arpack
