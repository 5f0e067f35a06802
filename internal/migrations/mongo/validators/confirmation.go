package validators

import "go.mongodb.org/mongo-driver/bson"

var ConfirmationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"service_id",
			"service_name",
			"duration",
			"price",
			"date",
			"time",
			"name",
			"phone",
			"location",
			"confirmed_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"service_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"service_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"duration": bson.M{
				"bsonType": "string",
			},

			"price": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{1,2}:\d{2} (AM|PM)$`,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"email": bson.M{
				"bsonType": "string",
			},

			"location": bson.M{
				"bsonType": "string",
			},

			"confirmed_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
