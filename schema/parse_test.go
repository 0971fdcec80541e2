package schema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/graphsmith/appsync/schema"
)

const playersSchema = `
type Query {
  players: [Player!]!
  player(id: ID!): Player
  gameStatus: GameStatus!
}

type Mutation {
  createPlayer(name: String!): Player!
  setGameStatus(status: GameStatus!): GameStatus!
}

type Subscription {
  onCreatePlayer: Player @aws_subscribe(mutations: ["createPlayer"])
}

type Player {
  id: ID!
  name: String!
  team: Team!
  contact: AWSEmail
}

input PlayerInput {
  name: String!
  team: Team!
}

enum Team {
  RUST
  PYTHON
  JS
}

enum GameStatus {
  STARTED
  STOPPED
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	model, err := schema.Parse(playersSchema, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var typeNames []string
	for _, td := range model.Types {
		typeNames = append(typeNames, td.Name)
	}
	if diff := cmp.Diff([]string{"Player", "PlayerInput"}, typeNames); diff != "" {
		t.Errorf("type names mismatch (-want +got):\n%s", diff)
	}
	if !model.Type("PlayerInput").Input {
		t.Errorf("PlayerInput.Input = false, want true")
	}

	var enumNames []string
	for _, ed := range model.Enums {
		enumNames = append(enumNames, ed.Name)
	}
	if diff := cmp.Diff([]string{"GameStatus", "Team"}, enumNames); diff != "" {
		t.Errorf("enum names mismatch (-want +got):\n%s", diff)
	}

	var opNames []string
	for _, op := range model.Operations {
		opNames = append(opNames, op.Kind.String()+"."+op.Name)
	}
	want := []string{
		"Query.players", "Query.player", "Query.gameStatus",
		"Mutation.createPlayer", "Mutation.setGameStatus",
		"Subscription.onCreatePlayer",
	}
	if diff := cmp.Diff(want, opNames); diff != "" {
		t.Errorf("operation order mismatch (-want +got):\n%s", diff)
	}

	if got := model.Operation(schema.Query, "players").Return.String(); got != "[Player!]!" {
		t.Errorf("players return = %q, want %q", got, "[Player!]!")
	}

	contact := model.Type("Player").Field("contact")
	if contact.Type.Kind != schema.RefScalar || contact.Type.Scalar != schema.ScalarAWSEmail {
		t.Errorf("Player.contact resolved to kind=%v scalar=%v, want AWSEmail scalar", contact.Type.Kind, contact.Type.Scalar)
	}
	if !contact.Type.Nullable {
		t.Errorf("Player.contact should be nullable")
	}
}

func TestParseSubscription(t *testing.T) {
	t.Parallel()

	model, err := schema.Parse(playersSchema, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	sub := model.Operation(schema.Subscription, "onCreatePlayer")
	if sub == nil {
		t.Fatal("onCreatePlayer not found")
	}
	// The service never guarantees a subscription result, so the return is
	// nullable even though the schema could declare it non-null.
	if !sub.Return.Nullable {
		t.Errorf("subscription return should be forced nullable")
	}
	if diff := cmp.Diff([]string{"createPlayer"}, sub.TriggerMutations); diff != "" {
		t.Errorf("trigger mutations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()

	first, err := schema.Parse(playersSchema, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := schema.Parse(playersSchema, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(first, second, cmpopts.IgnoreUnexported(schema.Model{})); diff != "" {
		t.Errorf("two parses of the same source differ (-first +second):\n%s", diff)
	}
}

func TestParseWarnings(t *testing.T) {
	t.Parallel()

	source := `
type Query { ping: String }
union Thing = A | B
type A { x: String }
type B { y: String }
interface Node { id: ID! }
scalar Money
`
	model, err := schema.Parse(source, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(model.Warnings) != 3 {
		t.Fatalf("Warnings = %v, want 3 entries", model.Warnings)
	}
	for _, want := range []string{`union type "Thing"`, `interface type "Node"`, `custom scalar "Money"`} {
		found := false
		for _, w := range model.Warnings {
			if strings.Contains(w, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("no warning mentioning %s in %v", want, model.Warnings)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		overrides *schema.Overrides
		wantErr   string
	}{
		{
			name:    "syntax error",
			source:  `type Query {`,
			wantErr: "parse failed",
		},
		{
			name: "operation returns a union",
			source: `
type Query { thing: Thing }
union Thing = A | B
type A { x: String }
type B { y: String }
`,
			wantErr: `references union "Thing"`,
		},
		{
			name: "field references an interface",
			source: `
type Query { a: A }
interface Node { id: ID! }
type A { node: Node }
`,
			wantErr: `field A.node references interface "Node"`,
		},
		{
			name:      "type override targets undefined type",
			source:    `type Query { ping: String }`,
			overrides: &schema.Overrides{Types: map[string]string{"Query.ping": "Bogus"}},
			wantErr:   `references undefined type "Bogus"`,
		},
		{
			name:      "name override targets nothing",
			source:    `type Query { ping: String }`,
			overrides: &schema.Overrides{Names: map[string]string{"Playr.id": "PlayerID"}},
			wantErr:   "override names.Playr.id targets a name the schema does not define",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := schema.Parse(tt.source, tt.overrides)
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			var schemaErr *schema.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("Parse() error type = %T, want *schema.SchemaError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseOverrides(t *testing.T) {
	t.Parallel()

	overrides := &schema.Overrides{
		Names: map[string]string{
			"Player":                "GamePlayer",
			"Player.id":             "playerID",
			"Team.RUST":             "Ferris",
			"Mutation.createPlayer": "addPlayer",
		},
		Types: map[string]string{
			"Player.id":              "String",
			"Query.player.id":        "String",
			"Mutation.setGameStatus": "String",
		},
	}
	model, err := schema.Parse(playersSchema, overrides)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	player := model.Type("Player")
	if player.GoName != "GamePlayer" {
		t.Errorf("Player.GoName = %q, want %q", player.GoName, "GamePlayer")
	}
	id := player.Field("id")
	if id.GoName != "playerID" {
		t.Errorf("Player.id GoName = %q, want %q", id.GoName, "playerID")
	}
	if id.Type.Scalar != schema.ScalarString || id.Type.Nullable {
		t.Errorf("Player.id type = %v, want non-null String", id.Type)
	}

	if got := model.Enum("Team").Value("RUST").GoName; got != "Ferris" {
		t.Errorf("Team.RUST GoName = %q, want %q", got, "Ferris")
	}
	if got := model.Operation(schema.Mutation, "createPlayer").GoName; got != "addPlayer" {
		t.Errorf("createPlayer GoName = %q, want %q", got, "addPlayer")
	}

	arg := model.Operation(schema.Query, "player").Arg("id")
	if arg.Type.Scalar != schema.ScalarString {
		t.Errorf("player(id:) override not applied: %v", arg.Type)
	}
	if got := model.Operation(schema.Mutation, "setGameStatus").Return; got.Scalar != schema.ScalarString {
		t.Errorf("setGameStatus return override not applied: %v", got)
	}
}
