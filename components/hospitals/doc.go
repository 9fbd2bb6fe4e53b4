// Package hospitals provides the participating hospital list, search helpers,
// and a small net/http handler that returns JSON options for form inputs.
//
// The default handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. The backing data is loaded from the
// embedded list under data/hospitals.txt.
package hospitals
