package extract

import (
	"strings"
	"testing"
)

func TestVisibleText_JoinsTextNodes(t *testing.T) {
	page := `
	<html>
	<body>
		<h1>Unsolved Homicides</h1>
		<p>January 5, 2014 the case remains open.</p>
	</body>
	</html>
	`

	text, err := VisibleText(page)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(text, "Unsolved Homicides") {
		t.Errorf("Expected heading text, got %q", text)
	}
	if !strings.Contains(text, "January 5, 2014 the case remains open.") {
		t.Errorf("Expected paragraph text, got %q", text)
	}
}

func TestVisibleText_SkipsScriptAndStyle(t *testing.T) {
	page := `
	<html>
	<head>
		<script>var hidden = "January 1, 2014 script text";</script>
		<style>.case { color: red; }</style>
	</head>
	<body>
		<p>Visible case narrative.</p>
	</body>
	</html>
	`

	text, err := VisibleText(page)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(text, "script text") {
		t.Errorf("Expected script content to be skipped, got %q", text)
	}
	if strings.Contains(text, "color: red") {
		t.Errorf("Expected style content to be skipped, got %q", text)
	}
	if !strings.Contains(text, "Visible case narrative.") {
		t.Errorf("Expected body text, got %q", text)
	}
}
