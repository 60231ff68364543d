// Package bedrock implements the agent management and runtime interfaces on
// top of the AWS SDK for Go v2.
package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/smithy-go"

	"github.com/minhyannv/bedrock-agent-chat/pkg/agent"
	loggerpkg "github.com/minhyannv/bedrock-agent-chat/pkg/logger"
)

// ManagementAPI is the subset of the bedrockagent client used here.
type ManagementAPI interface {
	GetAgent(ctx context.Context, params *bedrockagent.GetAgentInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.GetAgentOutput, error)
	UpdateAgent(ctx context.Context, params *bedrockagent.UpdateAgentInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.UpdateAgentOutput, error)
}

// RuntimeAPI is the subset of the bedrockagentruntime client used here.
type RuntimeAPI interface {
	InvokeAgent(ctx context.Context, params *bedrockagentruntime.InvokeAgentInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.InvokeAgentOutput, error)
}

// Options selects the AWS region and shared config profile. Empty values
// leave the decision to the SDK's default chain.
type Options struct {
	Region  string
	Profile string
	Logger  loggerpkg.Logger
	Verbose bool
}

// Client satisfies agent.Manager and agent.Runtime.
type Client struct {
	mgmt    ManagementAPI
	runtime RuntimeAPI
	logger  loggerpkg.Logger
	verbose bool
}

var (
	_ agent.Manager = (*Client)(nil)
	_ agent.Runtime = (*Client)(nil)
)

// New loads the AWS configuration and builds both service clients.
func New(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	loggerpkg.Debug(opts.Verbose, opts.Logger, "aws config loaded", map[string]any{
		"region":  cfg.Region,
		"profile": opts.Profile,
	})
	return NewWithAPIs(bedrockagent.NewFromConfig(cfg), bedrockagentruntime.NewFromConfig(cfg), opts), nil
}

// NewWithAPIs builds a Client from already constructed service clients.
func NewWithAPIs(mgmt ManagementAPI, runtime RuntimeAPI, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	return &Client{mgmt: mgmt, runtime: runtime, logger: logger, verbose: opts.Verbose}
}

// DescribeAgent fetches the agent's model, name and execution role.
func (c *Client) DescribeAgent(ctx context.Context, agentID string) (agent.Metadata, error) {
	out, err := c.mgmt.GetAgent(ctx, &bedrockagent.GetAgentInput{AgentId: aws.String(agentID)})
	if err != nil {
		return agent.Metadata{}, err
	}
	if out == nil || out.Agent == nil {
		return agent.Metadata{}, fmt.Errorf("get agent %s: empty response", agentID)
	}
	return agent.Metadata{
		ModelID: aws.ToString(out.Agent.FoundationModel),
		Name:    aws.ToString(out.Agent.AgentName),
		RoleARN: aws.ToString(out.Agent.AgentResourceRoleArn),
	}, nil
}

// UpdateAgent switches the agent's foundation model.
func (c *Client) UpdateAgent(ctx context.Context, agentID string, req agent.UpdateRequest) error {
	loggerpkg.Debug(c.verbose, c.logger, "update agent", map[string]any{
		"agent_id": agentID,
		"model_id": req.ModelID,
	})
	_, err := c.mgmt.UpdateAgent(ctx, &bedrockagent.UpdateAgentInput{
		AgentId:              aws.String(agentID),
		AgentName:            aws.String(req.Name),
		AgentResourceRoleArn: aws.String(req.RoleARN),
		FoundationModel:      aws.String(req.ModelID),
	})
	return err
}

// InvokeAgent sends one turn and returns the decoded event stream.
func (c *Client) InvokeAgent(ctx context.Context, req agent.InvokeRequest) (agent.EventStream, error) {
	out, err := c.runtime.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(req.AgentID),
		AgentAliasId: aws.String(req.AliasID),
		SessionId:    aws.String(req.SessionID),
		EnableTrace:  aws.Bool(req.EnableTrace),
		EndSession:   aws.Bool(req.EndSession),
		InputText:    aws.String(req.Text),
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("invoke agent: empty response")
	}
	es := out.GetStream()
	if es == nil {
		return nil, errors.New("invoke agent: response has no event stream")
	}
	return newEventStream(es, c.logger, c.verbose), nil
}

// Describe renders err for display, preferring the service error code and
// message when err carries a smithy API error.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.ErrorMessage())
		if msg == "" {
			return apiErr.ErrorCode()
		}
		return apiErr.ErrorCode() + ": " + msg
	}
	return err.Error()
}
