package domain

import (
	"reflect"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "NoTags",
			text: "just a plain tweet",
			want: []string{},
		},
		{
			name: "Empty",
			text: "",
			want: []string{},
		},
		{
			name: "KeepsOrderCaseAndRepeats",
			text: "Hello #World and #world #Go",
			want: []string{"World", "world", "Go"},
		},
		{
			name: "AdjacentTags",
			text: "#go#lang",
			want: []string{"go", "lang"},
		},
		{
			name: "StopsAtPunctuation",
			text: "shipping #go! today",
			want: []string{"go"},
		},
		{
			name: "DigitsAndUnderscore",
			text: "#go_2 is fine",
			want: []string{"go_2"},
		},
		{
			name: "BareHash",
			text: "just a # sign",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHashtags(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractHashtags(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTweetHashtags(t *testing.T) {
	tweet := Tweet{Content: "learning #golang and #testing"}
	got := tweet.Hashtags()
	want := []string{"golang", "testing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Hashtags() = %v, want %v", got, want)
	}
}
