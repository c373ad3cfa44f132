package importer

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConvertToDocuments prepares raw JSON records for insertion: each record is
// shallow-copied, given a canonical identifier, stamped with timestamps, and
// has its nested id fields normalized.
func ConvertToDocuments(records []map[string]interface{}) []interface{} {
	now := time.Now()

	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		doc := make(map[string]interface{}, len(record)+3)
		for key, value := range record {
			doc[key] = value
		}

		if _, ok := doc["_id"]; !ok {
			if id, ok := doc["id"]; ok {
				doc["_id"] = canonicalID(id)
			} else {
				doc["_id"] = primitive.NewObjectID()
			}
		}
		delete(doc, "id")

		doc["createdAt"] = now
		doc["updatedAt"] = now

		normalizeIDs(doc)
		docs = append(docs, doc)
	}
	return docs
}

func canonicalID(value interface{}) interface{} {
	if s, ok := value.(string); ok && len(s) == serializedObjectIDLength {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			return oid
		}
	}
	return value
}

// A 24-character "id" string is treated as a serialized object reference.
const serializedObjectIDLength = 24

// normalizeIDs rewrites "id" keys holding 24-character strings into ObjectID
// values stored under "_id", recursing through nested objects and array
// elements. Non-matching id fields, including 24-character strings that are
// not valid hex, are left untouched.
func normalizeIDs(doc map[string]interface{}) {
	for key, value := range doc {
		if key == "id" {
			if s, ok := value.(string); ok && len(s) == serializedObjectIDLength {
				if oid, err := primitive.ObjectIDFromHex(s); err == nil {
					doc["_id"] = oid
					delete(doc, "id")
					continue
				}
			}
		}

		switch v := value.(type) {
		case map[string]interface{}:
			normalizeIDs(v)
		case []interface{}:
			for _, item := range v {
				if nested, ok := item.(map[string]interface{}); ok {
					normalizeIDs(nested)
				}
			}
		}
	}
}
