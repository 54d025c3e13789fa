// Where: internal/infra/sam/template_parser_test.go
// What: End-to-end tests over a representative template.
package sam

import (
	"errors"
	"reflect"
	"testing"

	"github.com/samscope/samscope/internal/domain/provider"
)

const fixtureTemplate = `
AWSTemplateFormatVersion: "2010-09-09"
Transform: AWS::Serverless-2016-10-31
Parameters:
  Stage:
    Type: String
    Default: dev
  TableName:
    Type: String
    Default: items
Conditions:
  IsProd: !Equals [!Ref Stage, prod]
Globals:
  Function:
    Runtime: python3.11
    Timeout: 10
    Environment:
      Variables:
        STAGE: !Ref Stage
Resources:
  SharedLayer:
    Type: AWS::Serverless::LayerVersion
    Properties:
      ContentUri: ./layers/shared
  ListFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.list_handler
      CodeUri: ./src/list
      MemorySize: 256
      Environment:
        Variables:
          TABLE_NAME: !Ref TableName
      Layers:
        - !Ref SharedLayer
        - arn:aws:lambda:us-east-1:123456789012:layer:mylayer:4
      Events:
        ListApi:
          Type: Api
          Properties:
            Path: /items
            Method: GET
            RestApiId: ItemsApi
  CreateFunction:
    Type: AWS::Lambda::Function
    Properties:
      Handler: app.create_handler
      Runtime: python3.12
      Code:
        S3Bucket: artifacts
        S3Key: create.zip
  ProdOnlyFunction:
    Type: AWS::Serverless::Function
    Condition: IsProd
    Properties:
      Handler: app.prod_handler
      CodeUri: ./src/prod
  PingFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.ping_handler
      CodeUri: ./src/ping
      Events:
        Ping:
          Type: Api
          Properties:
            Path: /ping
            Method: GET
  ItemsApi:
    Type: AWS::Serverless::Api
    Properties:
      StageName: !Ref Stage
      Variables:
        TABLE: !Ref TableName
      Cors:
        AllowOrigin: "'*'"
        AllowMethods: "'GET,POST'"
      BinaryMediaTypes:
        - image~1png
        - "*~1*"
`

func parseFixture(t *testing.T, parameters map[string]string) *ParseResult {
	t.Helper()
	result, err := ParseTemplate(fixtureTemplate, parameters)
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}
	return result
}

func TestParseTemplateFunctions(t *testing.T) {
	result := parseFixture(t, nil)

	var names []string
	for _, fn := range result.Functions {
		names = append(names, fn.Name)
	}
	want := []string{"CreateFunction", "ListFunction", "PingFunction"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("function names = %v, want %v", names, want)
	}

	list := result.Functions[1]
	if list.Runtime != "python3.11" {
		t.Fatalf("Runtime = %q, want the Globals value", list.Runtime)
	}
	if list.Memory != 256 || list.Timeout != 10 {
		t.Fatalf("Memory/Timeout = %d/%d, want 256/10", list.Memory, list.Timeout)
	}
	if list.CodeURI.Path != "./src/list" {
		t.Fatalf("CodeURI = %q", list.CodeURI.Path)
	}

	variables, ok := list.Environment["Variables"].(map[string]any)
	if !ok {
		t.Fatalf("Environment missing Variables: %#v", list.Environment)
	}
	if variables["STAGE"] != "dev" || variables["TABLE_NAME"] != "items" {
		t.Fatalf("merged variables = %#v", variables)
	}

	create := result.Functions[0]
	if create.Runtime != "python3.12" {
		t.Fatalf("Lambda function Runtime = %q", create.Runtime)
	}
	if create.CodeURI.S3 == nil || create.CodeURI.S3.Bucket != "artifacts" || create.CodeURI.S3.Key != "create.zip" {
		t.Fatalf("Lambda function CodeURI = %#v", create.CodeURI)
	}
	if create.Memory != defaultMemory {
		t.Fatalf("Memory = %d, want the service default", create.Memory)
	}
}

func TestParseTemplateParameterOverride(t *testing.T) {
	result := parseFixture(t, map[string]string{"Stage": "prod"})

	var names []string
	for _, fn := range result.Functions {
		names = append(names, fn.Name)
	}
	found := false
	for _, name := range names {
		if name == "ProdOnlyFunction" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ProdOnlyFunction missing with Stage=prod: %v", names)
	}

	for _, api := range result.Apis {
		if api.StageName == "prod" {
			return
		}
	}
	t.Fatal("no api picked up the overridden stage name")
}

func TestParseTemplateConditionFiltersResources(t *testing.T) {
	result := parseFixture(t, nil)
	for _, fn := range result.Functions {
		if fn.Name == "ProdOnlyFunction" {
			t.Fatal("ProdOnlyFunction should be dropped when IsProd is false")
		}
	}
}

func TestParseTemplateLayers(t *testing.T) {
	result := parseFixture(t, nil)

	list := result.Functions[1]
	if len(list.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(list.Layers))
	}

	local := list.Layers[0]
	if !local.DefinedWithinTemplate() {
		t.Fatal("SharedLayer should be template-local")
	}
	if local.Name() != "SharedLayer" || local.Version() != nil {
		t.Fatalf("local layer identity = %q/%v", local.Name(), local.Version())
	}
	if local.CodeURI() != "./layers/shared/" {
		t.Fatalf("local layer codeuri = %q", local.CodeURI())
	}

	published := list.Layers[1]
	if published.DefinedWithinTemplate() {
		t.Fatal("published layer should not be template-local")
	}
	if published.Version() == nil || *published.Version() != 4 {
		t.Fatalf("published layer version = %v", published.Version())
	}
	if published.LayerARN() != "arn:aws:lambda:us-east-1:123456789012:layer:mylayer" {
		t.Fatalf("published layer arn = %q", published.LayerARN())
	}

	if len(result.Layers) != 2 {
		t.Fatalf("distinct layers = %d, want 2", len(result.Layers))
	}
}

func TestParseTemplateApis(t *testing.T) {
	result := parseFixture(t, nil)

	if len(result.Apis) != 2 {
		t.Fatalf("expected explicit plus default api, got %d", len(result.Apis))
	}

	items := result.Apis[0]
	if items.StageName != "dev" {
		t.Fatalf("StageName = %q", items.StageName)
	}
	if items.StageVariables["TABLE"] != "items" {
		t.Fatalf("StageVariables = %#v", items.StageVariables)
	}
	if items.Cors == nil || items.Cors.AllowOrigin != "'*'" {
		t.Fatalf("Cors = %#v", items.Cors)
	}
	if got := items.BinaryMediaTypes(); !reflect.DeepEqual(got, []string{"*/*", "image/png"}) {
		t.Fatalf("BinaryMediaTypes = %v", got)
	}
	if len(items.Routes) != 1 || items.Routes[0].Path != "/items" || items.Routes[0].Method != "get" {
		t.Fatalf("routes = %#v", items.Routes)
	}
	if items.Routes[0].FunctionName != "ListFunction" {
		t.Fatalf("route function = %q", items.Routes[0].FunctionName)
	}

	implicit := result.Apis[1]
	if len(implicit.Routes) != 1 || implicit.Routes[0].Path != "/ping" {
		t.Fatalf("implicit routes = %#v", implicit.Routes)
	}
}

func TestParseTemplateUnsupportedLayerIntrinsic(t *testing.T) {
	content := `
Resources:
  Fn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Runtime: python3.11
      CodeUri: ./src
      Layers:
        - !GetAtt [LayerStack, Outputs.LayerArn]
`
	_, err := ParseTemplate(content, nil)
	var unsupported *provider.UnsupportedIntrinsicError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want UnsupportedIntrinsicError", err)
	}
}

func TestParseTemplateInvalidLayerARN(t *testing.T) {
	content := `
Resources:
  Fn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Runtime: python3.11
      CodeUri: ./src
      Layers:
        - arn:aws:lambda:us-east-1:123456789012:layer:mylayer:latest
`
	_, err := ParseTemplate(content, nil)
	var invalid *provider.InvalidLayerVersionARNError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidLayerVersionARNError", err)
	}
}

func TestParseTemplateRejectsMissingResources(t *testing.T) {
	if _, err := ParseTemplate("Description: empty\n", nil); err == nil {
		t.Fatal("expected validation error for a template without Resources")
	}
}

func TestParseTemplateCollectsWarnings(t *testing.T) {
	content := `
Resources:
  Fn:
    Type: AWS::Serverless::Function
    Properties:
      Handler: app.handler
      Runtime: python3.11
      CodeUri: ./src
      Events:
        Broken:
          Type: Api
          Properties:
            Path: /broken
`
	result, err := ParseTemplate(content, nil)
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning for the incomplete event")
	}
}
