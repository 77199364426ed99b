package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/errors"
	"github.com/devdash/devdash/internal/exec"
)

const (
	// MaxInstances caps the instance records kept per cycle.
	MaxInstances = 12
	// NoInstances is the display placeholder for an empty list.
	NoInstances = "no instances found"

	awsQuery = "Reservations[].Instances[].[InstanceId,State.Name,Tags[?Key=='Name']|[0].Value,InstanceType,Placement.AvailabilityZone,PublicIpAddress,PrivateIpAddress]"
)

// Remediation messages for the AWS failures operators hit most.
const (
	AWSAuthMissing   = "AWS auth missing. Run `aws configure`, set AWS_PROFILE, or configure SSO."
	AWSRegionMissing = "AWS region missing. Set aws.region in .devdash.yaml or AWS_REGION."
	AWSUnreachable   = "AWS network/API unreachable."
)

// ResolveAWSTarget picks region and profile: explicit config first, then
// AWS_REGION / AWS_DEFAULT_REGION and AWS_PROFILE.
func ResolveAWSTarget(cfg config.AWSConfig) (region, profile string) {
	region = firstNonEmpty(cfg.Region, os.Getenv("AWS_REGION"), os.Getenv("AWS_DEFAULT_REGION"))
	profile = firstNonEmpty(cfg.Profile, os.Getenv("AWS_PROFILE"))
	return region, profile
}

// AWSSource describes where the inventory came from.
func AWSSource(region, profile string) string {
	switch {
	case profile != "" && region != "":
		return fmt.Sprintf("aws-cli (profile=%s, region=%s)", profile, region)
	case profile != "":
		return fmt.Sprintf("aws-cli (profile=%s)", profile)
	case region != "":
		return fmt.Sprintf("aws-cli (region=%s)", region)
	default:
		return "aws-cli"
	}
}

// AWSArgs builds the describe-instances invocation.
func AWSArgs(region, profile string) []string {
	args := []string{"ec2", "describe-instances"}
	if region != "" {
		args = append(args, "--region", region)
	}
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	return append(args, "--query", awsQuery, "--output", "json")
}

// CollectAWS lists EC2 instances through the aws CLI.
func CollectAWS(ctx context.Context, run exec.Runner, cfg config.AWSConfig) AWSStatus {
	region, profile := ResolveAWSTarget(cfg)
	source := AWSSource(region, profile)

	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	out, err := run.Run(ctx, "", "aws", AWSArgs(region, profile)...)
	if err != nil {
		return AWSStatus{
			Instances: []string{},
			Items:     []AWSInstance{},
			Source:    source,
			Error:     FormatAWSError(errors.Summary(err)),
		}
	}

	st, err := ParseAWSInstances(out)
	st.Source = source
	if err != nil {
		st.Error = err.Error()
	}
	return st
}

// ParseAWSInstances decodes the positional-array query output. Absent or
// null fields become legible placeholders.
func ParseAWSInstances(raw string) (AWSStatus, error) {
	empty := AWSStatus{Instances: []string{}, Items: []AWSInstance{}}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return empty, fmt.Errorf("AWS parse error: %v", err)
	}
	rows, ok := doc.([]any)
	if !ok {
		return empty, fmt.Errorf("unexpected AWS response shape")
	}

	items := []AWSInstance{}
	for _, row := range rows {
		if len(items) == MaxInstances {
			break
		}
		f, ok := row.([]any)
		if !ok {
			continue
		}
		items = append(items, AWSInstance{
			ID:           jsonField(f, 0, "unknown"),
			State:        jsonField(f, 1, "?"),
			Name:         jsonField(f, 2, "unnamed"),
			InstanceType: jsonField(f, 3, "unknown"),
			AZ:           jsonField(f, 4, "unknown"),
			PublicIP:     jsonField(f, 5, "none"),
			PrivateIP:    jsonField(f, 6, "none"),
		})
	}

	display := make([]string, 0, DisplayLimit)
	for i, inst := range items {
		if i == DisplayLimit {
			break
		}
		display = append(display, inst.Line())
	}
	if len(display) == 0 {
		display = append(display, NoInstances)
	}

	return AWSStatus{Instances: display, Items: items}, nil
}

// FormatAWSError maps known CLI failures to remediation text and passes
// anything else through unchanged.
func FormatAWSError(msg string) string {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unable to locate credentials"):
		return AWSAuthMissing
	case strings.Contains(lower, "you must specify a region"):
		return AWSRegionMissing
	case strings.Contains(lower, "could not connect"), strings.Contains(lower, "timed out"):
		return AWSUnreachable
	default:
		return msg
	}
}

// jsonField returns f[i] when it is a string, else def.
func jsonField(f []any, i int, def string) string {
	if i >= len(f) {
		return def
	}
	if s, ok := f[i].(string); ok {
		return s
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
