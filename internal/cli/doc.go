// Package cli is the recordvault command-line front-end.
//
// Commands
//
//	seed                                  populate empty pages and patients
//	page -p N [-q term]                   print one page of records
//	patients [-q term] [-p N] [-n size]   print one page of patients and the total
//	count [-q term]                       print the number of matching patients
//	add -p N [-t title] [-b body] name    add a record
//	addpatient -d diagnosis [-b body] name
//	export                                upload a ciphertext snapshot to S3
//	import file | import -k key           load a snapshot from a file or S3
//	shell                                 interactive prompt accepting the commands above
//	version                               print build data
//
// The secret comes from the configuration; when it is empty and stdin is a
// terminal it is read without echo.
package cli
