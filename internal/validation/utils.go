package validation

import "regexp"

// uuidRegex matches standard UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format.
//
// User ids are store-assigned UUIDs, so this distinguishes a malformed
// id (bad request) from a well-formed id that matches no user (not
// found). Format only; version/variant semantics are not checked.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
