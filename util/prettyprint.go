package util

import (
	"encoding/json"
)

// PrettyPrint serializes given value as JSON with indentation and returns the
// resulting string. It is used to attach readable dumps of raw notification
// fields to order audit notes. In case serialization to JSON fails,
// corresponding error is returned and an empty string is produced.
func PrettyPrint(obj interface{}) (string, error) {
	pretty, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}

// MustPrettyPrint is a version of PrettyPrint that panics in case of error.
func MustPrettyPrint(obj interface{}) string {
	result, err := PrettyPrint(obj)
	if err != nil {
		panic(err)
	}
	return result
}
