// A complete direct Lambda resolver for the players/game schema in
// schema.graphql. Model types and operation names in model_gen.go are
// produced by appsyncgen; this file binds a handler to every operation and
// hands the router to the Lambda runtime.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/graphsmith/appsync"
	"github.com/graphsmith/appsync/dispatch"
	"github.com/graphsmith/appsync/filters"
	"github.com/graphsmith/appsync/registry"
	"github.com/graphsmith/appsync/scalars"
	"github.com/graphsmith/appsync/schema"
)

//go:generate go run github.com/graphsmith/appsync/cmd/appsyncgen

// verifyRequest rejects API-key callers before any handler runs. Cognito,
// IAM, OIDC and Lambda-authorized callers pass through.
func verifyRequest(ctx context.Context, ev *appsync.Event) *appsync.Response {
	if ev.Identity != nil && ev.Identity.Kind == appsync.IdentityAPIKey {
		return appsync.NewErrorResponse(appsync.NewError("Unauthorized", "API key access is not allowed"))
	}
	return nil
}

func main() {
	ctx := context.Background()

	source, err := os.ReadFile("schema.graphql")
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	model, err := schema.Parse(string(source), nil)
	if err != nil {
		log.Fatalf("parse schema: %v", err)
	}
	reg, err := registry.New(model, registry.Full)
	if err != nil {
		log.Fatalf("build registry: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	db := newStore(dynamodb.NewFromConfig(awsCfg), os.Getenv("PLAYERS_TABLE"))

	router := dispatch.NewRouter(reg,
		dispatch.WithLogger(slog.Default()),
		dispatch.WithHook(verifyRequest),
	)

	router.Query("players", func(ctx context.Context) ([]Player, error) {
		return db.listPlayers(ctx)
	})
	router.Query("player", func(ctx context.Context, id scalars.ID) (*Player, error) {
		return db.getPlayer(ctx, id)
	})
	router.Query("gameStatus", func(ctx context.Context) (GameStatus, error) {
		return db.gameStatus(ctx)
	})

	router.Mutation("createPlayer", func(ctx context.Context, name string) (Player, error) {
		p := Player{Id: scalars.NewID(), Name: name, Team: TeamRust}
		if err := db.putPlayer(ctx, p); err != nil {
			return Player{}, err
		}
		return p, nil
	})
	router.Mutation("deletePlayer", func(ctx context.Context, id scalars.ID) (Player, error) {
		p, err := db.deletePlayer(ctx, id)
		if err != nil {
			return Player{}, err
		}
		if p == nil {
			return Player{}, appsync.NewErrorf("NotFound", "no player %s", id)
		}
		return *p, nil
	})
	router.Mutation("setGameStatus", func(ctx context.Context, status GameStatus) (GameStatus, error) {
		if !status.Valid() {
			return "", appsync.NewErrorf("InvalidStatus", "unknown game status %q", status)
		}
		if err := db.setGameStatus(ctx, status); err != nil {
			return "", err
		}
		return status, nil
	})

	// Cognito callers only see players created on their own team; everyone
	// else receives every event.
	router.Subscription("onCreatePlayer", func(ctx context.Context, ev *appsync.Event) (*filters.FilterGroup, error) {
		if ev.Identity == nil || ev.Identity.Kind != appsync.IdentityCognito {
			return nil, nil
		}
		team, ok := ev.Identity.Cognito.Claims["custom:team"].(string)
		if !ok {
			return nil, nil
		}
		path, err := filters.NewFieldPath("team")
		if err != nil {
			return nil, err
		}
		group, err := filters.NewGroup(path.Eq(team))
		if err != nil {
			return nil, err
		}
		return filters.New(group)
	})
	router.Subscription("onGameStatusChange", func(ctx context.Context) (*filters.FilterGroup, error) {
		return nil, nil
	})

	if err := router.Validate(); err != nil {
		log.Fatalf("validate bindings: %v", err)
	}

	lambda.Start(router.Handle)
}
