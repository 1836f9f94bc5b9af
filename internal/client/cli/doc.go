// Package cli implements the toldya command-line client.
//
// Commands:
//
//	create -name NAME -subject SUBJECT -reveal TIME   body is read from stdin
//	get ID
//
// TIME is either unix seconds or an RFC 3339 timestamp. When stdin is a
// terminal the body is read without echo, so it does not linger on screen.
package cli
