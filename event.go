package appsync

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Event is one incoming resolver invocation. It is created per request by the
// dispatcher and discarded once the response has been produced.
type Event struct {
	// Operation is the schema operation requested, either as the bare field
	// name ("createPlayer") or qualified by its root type
	// ("Mutation.createPlayer").
	Operation string `json:"operation"`

	// Arguments holds the raw, not yet validated argument object.
	Arguments jsontext.Value `json:"arguments,omitzero"`

	// Identity describes the caller. A nil Identity means API-key
	// authorization, which carries no caller information.
	Identity *Identity `json:"identity,omitzero"`

	// RequestContext carries ambient request metadata (headers, source IP)
	// when the platform provides it.
	RequestContext *RequestContext `json:"requestContext,omitzero"`
}

// RequestContext is the ambient metadata AppSync attaches to a request.
type RequestContext struct {
	Headers    map[string]string `json:"headers,omitzero"`
	DomainName string            `json:"domainName,omitzero"`
	SourceIP   []string          `json:"sourceIp,omitzero"`
}

// IdentityKind discriminates the authorization mode of an Event.
type IdentityKind string

const (
	IdentityAPIKey  IdentityKind = "API_KEY"
	IdentityCognito IdentityKind = "AMAZON_COGNITO_USER_POOLS"
	IdentityIAM     IdentityKind = "AWS_IAM"
	IdentityOIDC    IdentityKind = "OPENID_CONNECT"
	IdentityLambda  IdentityKind = "AWS_LAMBDA"
)

// Identity is the caller identity attached to an Event. Exactly one of the
// variant fields is set, matching Kind; the variant is recognized from the
// payload shape because AppSync does not tag it.
type Identity struct {
	Kind IdentityKind

	Cognito *CognitoIdentity
	IAM     *IAMIdentity
	OIDC    *OIDCIdentity
	Lambda  *LambdaIdentity
}

// CognitoIdentity is the identity sent for Amazon Cognito user pool
// authorization.
//
// Groups stays optional: Cognito omits it entirely for pools without group
// configuration, so an absent list is not the same as an empty one.
type CognitoIdentity struct {
	Sub      string         `json:"sub"`
	Username string         `json:"username,omitzero"`
	Issuer   string         `json:"issuer,omitzero"`
	Groups   *[]string      `json:"groups,omitzero"`
	Claims   map[string]any `json:"claims,omitzero"`
	SourceIP []string       `json:"sourceIp,omitzero"`
}

// IAMIdentity is the identity sent for AWS IAM (SigV4) authorization.
type IAMIdentity struct {
	AccountID             string   `json:"accountId"`
	UserARN               string   `json:"userArn"`
	Username              string   `json:"username,omitzero"`
	CognitoIdentityID     string   `json:"cognitoIdentityId,omitzero"`
	CognitoIdentityPoolID string   `json:"cognitoIdentityPoolId,omitzero"`
	SourceIP              []string `json:"sourceIp,omitzero"`
}

// OIDCIdentity is the identity sent for OpenID Connect authorization.
type OIDCIdentity struct {
	Issuer string         `json:"iss"`
	Sub    string         `json:"sub"`
	Claims map[string]any `json:"claims,omitzero"`
}

// LambdaIdentity echoes the resolver context returned by a Lambda authorizer.
type LambdaIdentity struct {
	ResolverContext map[string]any `json:"resolverContext"`
}

// UnmarshalJSON recognizes the identity variant from the fields present in
// the payload. A JSON null decodes as the API-key identity. It never guesses:
// a payload matching no known shape is an error, not a silent API-key
// fallback.
func (id *Identity) UnmarshalJSON(data []byte) error {
	v := jsontext.Value(data)
	if v.Kind() == 'n' {
		*id = Identity{Kind: IdentityAPIKey}
		return nil
	}
	if v.Kind() != '{' {
		return fmt.Errorf("identity: expected object or null, got %s", v.Kind())
	}

	var probe map[string]jsontext.Value
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	switch {
	case len(probe) == 0:
		*id = Identity{Kind: IdentityAPIKey}
	case probe["resolverContext"] != nil:
		var li LambdaIdentity
		if err := json.Unmarshal(data, &li); err != nil {
			return fmt.Errorf("identity: lambda authorizer payload: %w", err)
		}
		*id = Identity{Kind: IdentityLambda, Lambda: &li}
	case probe["userArn"] != nil || probe["accountId"] != nil:
		var ii IAMIdentity
		if err := json.Unmarshal(data, &ii); err != nil {
			return fmt.Errorf("identity: IAM payload: %w", err)
		}
		*id = Identity{Kind: IdentityIAM, IAM: &ii}
	case probe["iss"] != nil:
		var oi OIDCIdentity
		if err := json.Unmarshal(data, &oi); err != nil {
			return fmt.Errorf("identity: OIDC payload: %w", err)
		}
		*id = Identity{Kind: IdentityOIDC, OIDC: &oi}
	case probe["sub"] != nil:
		var ci CognitoIdentity
		if err := json.Unmarshal(data, &ci); err != nil {
			return fmt.Errorf("identity: Cognito payload: %w", err)
		}
		*id = Identity{Kind: IdentityCognito, Cognito: &ci}
	default:
		return fmt.Errorf("identity: unrecognized identity payload")
	}
	return nil
}

// MarshalJSON writes the active variant back in its wire shape.
func (id Identity) MarshalJSON() ([]byte, error) {
	switch id.Kind {
	case IdentityCognito:
		return json.Marshal(id.Cognito)
	case IdentityIAM:
		return json.Marshal(id.IAM)
	case IdentityOIDC:
		return json.Marshal(id.OIDC)
	case IdentityLambda:
		return json.Marshal(id.Lambda)
	default:
		return []byte("null"), nil
	}
}
