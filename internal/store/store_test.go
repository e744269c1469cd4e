package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)

	if err := s.Put(ctx, map[string]string{"weather-city": "osaka"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "weather-city")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got["weather-city"] != "osaka" {
		t.Fatalf("unexpected result: %v", got)
	}

	if err := s.Put(ctx, map[string]string{"weather-city": "kyoto"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, _ = s.Get(ctx, "weather-city", "weather-latitude")
	if got["weather-city"] != "kyoto" {
		t.Fatalf("expected overwrite, got %v", got)
	}
	if _, ok := got["weather-latitude"]; ok {
		t.Fatalf("missing key should be absent, got %v", got)
	}
}

func TestMemoryStoreCopiesSeed(t *testing.T) {
	seed := map[string]string{"weather-city": "nagoya"}
	s := NewMemoryStore(seed)
	seed["weather-city"] = "changed"

	got, _ := s.Get(context.Background(), "weather-city")
	if got["weather-city"] != "nagoya" {
		t.Fatalf("seed map should be copied, got %v", got)
	}
}

func TestAllSet(t *testing.T) {
	params := map[string]string{"a": "1", "b": ""}
	if AllSet(params, "a", "b") {
		t.Fatal("empty value should count as unset")
	}
	if AllSet(params, "a", "c") {
		t.Fatal("missing key should count as unset")
	}
	if !AllSet(params, "a") {
		t.Fatal("expected a to be set")
	}
}

type fakeSSM struct {
	params  map[string]string
	puts    []ssm.PutParameterInput
	getIn   *ssm.GetParametersInput
	failPut string
}

func (f *fakeSSM) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.getIn = in
	out := &ssm.GetParametersOutput{}
	for _, name := range in.Names {
		v, ok := f.params[name]
		if !ok {
			out.InvalidParameters = append(out.InvalidParameters, name)
			continue
		}
		out.Parameters = append(out.Parameters, types.Parameter{Name: aws.String(name), Value: aws.String(v)})
	}
	return out, nil
}

func (f *fakeSSM) PutParameter(_ context.Context, in *ssm.PutParameterInput, _ ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	if aws.ToString(in.Name) == f.failPut {
		return nil, errors.New("throttled")
	}
	f.puts = append(f.puts, *in)
	f.params[aws.ToString(in.Name)] = aws.ToString(in.Value)
	return &ssm.PutParameterOutput{}, nil
}

func TestSSMStore(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSSM{params: map[string]string{}}
	s := NewSSMStore(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := s.Put(ctx, map[string]string{"weather-latitude": "35", "weather-longitude": "135"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if len(fake.puts) != 2 {
		t.Fatalf("expected 2 puts, got %d", len(fake.puts))
	}
	for _, in := range fake.puts {
		if in.Type != types.ParameterTypeString || !aws.ToBool(in.Overwrite) {
			t.Fatalf("unexpected put input: %+v", in)
		}
	}

	got, err := s.Get(ctx, "weather-latitude", "weather-longitude", "weather-city")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got["weather-latitude"] != "35" || got["weather-longitude"] != "135" {
		t.Fatalf("unexpected result: %v", got)
	}
	if !aws.ToBool(fake.getIn.WithDecryption) {
		t.Fatal("expected WithDecryption to be set")
	}
}

func TestSSMStorePutOrder(t *testing.T) {
	fake := &fakeSSM{params: map[string]string{}}
	s := NewSSMStore(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))

	params := map[string]string{"weather-longitude": "135.0", "weather-city": "kyoto", "weather-latitude": "35.0", "weather-API-param": "city"}
	for range 5 {
		fake.puts = nil
		if err := s.Put(context.Background(), params); err != nil {
			t.Fatalf("put: %v", err)
		}
		var names []string
		for _, in := range fake.puts {
			names = append(names, aws.ToString(in.Name))
		}
		want := []string{"weather-API-param", "weather-city", "weather-latitude", "weather-longitude"}
		if !slices.Equal(names, want) {
			t.Fatalf("puts in order %v, want %v", names, want)
		}
	}
}

func TestSSMStorePutError(t *testing.T) {
	fake := &fakeSSM{params: map[string]string{}, failPut: "weather-city"}
	s := NewSSMStore(fake, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := s.Put(context.Background(), map[string]string{"weather-city": "osaka"}); err == nil {
		t.Fatal("expected put error")
	}
}
