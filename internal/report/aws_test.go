package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/samvad-hq/petfriends-client/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-456")}, nil
}

func TestSQSPublisherSendsReport(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{id: "queue", queueURL: "https://sqs.example.com/queue", client: client, log: logger.NopLogger{}}

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
	require.NotNil(t, client.input)
	assert.Equal(t, "https://sqs.example.com/queue", aws.ToString(client.input.QueueUrl))

	attr, ok := client.input.MessageAttributes["app"]
	require.True(t, ok)
	assert.Equal(t, "String", aws.ToString(attr.DataType))
	assert.Equal(t, "petfriends-client", aws.ToString(attr.StringValue))
	assert.Equal(t, "false", aws.ToString(client.input.MessageAttributes["passed"].StringValue))
	assert.True(t, strings.Contains(aws.ToString(client.input.MessageBody), `"id":"auth-valid-key"`))
}

func TestSQSPublisherWrapsSendError(t *testing.T) {
	boom := errors.New("boom")
	pub := &sqsPublisher{id: "queue", queueURL: "q", client: &fakeSQSClient{err: boom}, log: logger.NopLogger{}}

	err := pub.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
}

func TestSNSPublisherSendsReport(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{id: "topic", topicARN: "arn:aws:sns:eu-west-1:000000000000:runs", client: client, log: logger.NopLogger{}}

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
	require.NotNil(t, client.input)
	assert.Equal(t, "arn:aws:sns:eu-west-1:000000000000:runs", aws.ToString(client.input.TopicArn))
	assert.Equal(t, "test", aws.ToString(client.input.MessageAttributes["env"].StringValue))
	assert.Contains(t, aws.ToString(client.input.Message), `"base_url":"http://stub/"`)
}

func TestSNSPublisherWrapsPublishError(t *testing.T) {
	boom := errors.New("boom")
	pub := &snsPublisher{id: "topic", topicARN: "arn", client: &fakeSNSClient{err: boom}, log: logger.NopLogger{}}

	err := pub.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
}

func TestAWSBuildersUseStaticCredentialsAndEndpoint(t *testing.T) {
	settings := AWSSettings{
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	}
	ctx := context.Background()

	pub, err := newSQSPublisher(ctx, PublisherConfig{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "http://localhost:4566/000000000000/runs", AWS: settings}}, nil)
	require.NoError(t, err)
	assert.Equal(t, TypeSQS, pub.Type())
	sqsClient, ok := pub.(*sqsPublisher).client.(*sqs.Client)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:4566", aws.ToString(sqsClient.Options().BaseEndpoint))
	assert.Equal(t, "eu-west-1", sqsClient.Options().Region)

	creds, err := sqsClient.Options().Credentials.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", creds.AccessKeyID)

	pub, err = newSNSPublisher(ctx, PublisherConfig{ID: "t", Type: TypeSNS, SNS: &SNSPublisherConfig{TopicARN: "arn:aws:sns:eu-west-1:000000000000:runs", AWS: settings}}, nil)
	require.NoError(t, err)
	assert.Equal(t, TypeSNS, pub.Type())
	assert.Equal(t, "t", pub.ID())
}

func TestAWSBuildersRequireConfig(t *testing.T) {
	_, err := newSQSPublisher(context.Background(), PublisherConfig{ID: "q", Type: TypeSQS}, nil)
	assert.Error(t, err)
	_, err = newSNSPublisher(context.Background(), PublisherConfig{ID: "t", Type: TypeSNS}, nil)
	assert.Error(t, err)
}
