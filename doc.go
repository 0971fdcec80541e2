// Package appsync provides the runtime types shared by every AWS AppSync
// direct Lambda resolver built with this module: the invocation event and its
// identity variants, the response envelope, and the error value serialized
// into failed responses.
//
// A resolver process is assembled from the sibling packages:
//
//	model, err := schema.Parse(schemaSource, overrides)
//	reg, err := registry.New(model, registry.Full)
//	router := dispatch.NewRouter(reg)
//	router.Query("players", listPlayers)
//	router.Mutation("createPlayer", createPlayer)
//	if err := router.Validate(); err != nil {
//		log.Fatal(err)
//	}
//	lambda.Start(router.Handle)
//
// Handlers receive their arguments already decoded against the schema and
// return either the operation's declared value or an *appsync.Error.
package appsync
