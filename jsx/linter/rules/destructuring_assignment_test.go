package rules_test

import (
	"testing"

	"github.com/speakeasy-api/jsxlint/jsx/linter/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestructuringAssignmentRule_ValidCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		options []any
	}{
		{
			name: "destructured SFC argument",
			src: `const MyComponent = ({ id, className }) => (
  <div id={id} className={className} />
);`,
		},
		{
			name: "destructured props in SFC body",
			src: `const MyComponent = (props) => {
  const { id, className } = props;
  return <div id={id} className={className} />;
};`,
			options: []any{"always"},
		},
		{
			name: "props passed through",
			src: `const MyComponent = (props) => {
  return <div id={id} props={props} />;
};`,
		},
		{
			name: "destructured context argument",
			src: `const MyComponent = (props, { color }) => (
  <div id={id} props={props} color={color} />
);`,
		},
		{
			name: "class expression destructuring",
			src: `const Foo = class extends Inferno.PureComponent {
  render() {
    const { foo } = this.props;
    return <div>{foo}</div>;
  }
};`,
			options: []any{"always"},
		},
		{
			name: "class destructuring",
			src: `class Foo extends Inferno.Component {
  render() {
    const { foo } = this.props;
    return <p>{foo}</p>;
  }
}`,
		},
		{
			name: "member access in never mode",
			src: `class Foo extends Inferno.Component {
  render() {
    return <p>{this.props.foo}</p>;
  }
}`,
			options: []any{"never"},
		},
		{
			name: "destructuring an unrelated object in never mode",
			src: `const Foo = (props) => {
  const { h, i } = hi;
  return <p>{props.id}</p>;
};`,
			options: []any{"never"},
		},
		{
			name: "state assignment in constructor",
			src: `class Foo extends Inferno.Component {
  constructor() {
    super();
    this.state = {};
    this.state.foo = "bar";
  }
}`,
		},
		{
			name: "not a component",
			src: `class Foo {
  bar() {
    return this.props.foo;
  }
}
function helper(props) {
  return props.value;
}`,
		},
		{
			name: "ignored source",
			src: `class Foo extends Inferno.Component {
  render() {
    return <p>{this.state.foo}</p>;
  }
}`,
			options: []any{"always", map[string]any{"state": "ignore"}},
		},
		{
			name: "ignored class fields",
			src: `class Foo extends Inferno.Component {
  bar = this.props.bar;
  render() {
    const { foo } = this.props;
    return <p>{foo}</p>;
  }
}`,
			options: []any{"always", map[string]any{"ignoreClassFields": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings := runRule(t, &rules.DestructuringAssignmentRule{}, tt.src, tt.options...)
			assert.Empty(t, findings)
		})
	}
}

func TestDestructuringAssignmentRule_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		options  []any
		expected []string
	}{
		{
			name: "props member in SFC",
			src: `const MyComponent = (props) => {
  return <div id={props.id} />;
};`,
			expected: []string{"Must use destructuring props assignment"},
		},
		{
			name: "context member in SFC",
			src: `const MyComponent = (props, context) => {
  return <div id={context.id} />;
};`,
			expected: []string{"Must use destructuring context assignment"},
		},
		{
			name: "destructured props argument in never mode",
			src: `const MyComponent = ({ id, className }) => (
  <div id={id} className={className} />
);`,
			options:  []any{"never"},
			expected: []string{"Must never use destructuring props assignment in SFC argument"},
		},
		{
			name: "destructured context argument in never mode",
			src: `const MyComponent = (props, { color }) => (
  <div id={props.id} className={props.className} color={color} />
);`,
			options:  []any{"never"},
			expected: []string{"Must never use destructuring context assignment in SFC argument"},
		},
		{
			name: "this.props in render",
			src: `class Foo extends Inferno.Component {
  render() {
    return <p>{this.props.foo}</p>;
  }
}`,
			expected: []string{"Must use destructuring props assignment"},
		},
		{
			name: "this.state in render",
			src: `class Foo extends Inferno.Component {
  render() {
    return <p>{this.state.foo}</p>;
  }
}`,
			expected: []string{"Must use destructuring state assignment"},
		},
		{
			name: "this.context in render",
			src: `class Foo extends Inferno.Component {
  render() {
    return <p>{this.context.foo}</p>;
  }
}`,
			expected: []string{"Must use destructuring context assignment"},
		},
		{
			name: "children in another method",
			src: `class Foo extends Inferno.Component {
  foo() {
    return this.props.children;
  }
}`,
			expected: []string{"Must use destructuring props assignment"},
		},
		{
			name: "createClass render",
			src: `var Hello = createClass({
  render: function() {
    return <Text>{this.props.foo}</Text>;
  }
});`,
			expected: []string{"Must use destructuring props assignment"},
		},
		{
			name: "member read into a variable",
			src: `class Foo extends Inferno.Component {
  render() {
    const foo = this.props.foo;
    return <p>{foo}</p>;
  }
}`,
			expected: []string{"Must use destructuring props assignment"},
		},
		{
			name: "class destructuring in never mode",
			src: `class Foo extends Inferno.Component {
  render() {
    const { foo } = this.props;
    const { bar } = this.state;
    return <p>{foo}{bar}</p>;
  }
}`,
			options: []any{"never"},
			expected: []string{
				"Must never use destructuring props assignment",
				"Must never use destructuring state assignment",
			},
		},
		{
			name: "SFC destructuring in never mode",
			src: `const Foo = (props) => {
  const { id } = props;
  return <p>{id}</p>;
};`,
			options:  []any{"never"},
			expected: []string{"Must never use destructuring props assignment"},
		},
		{
			name: "per source override",
			src: `class Foo extends Inferno.Component {
  render() {
    const { foo } = this.props;
    return <p>{foo}{this.state.bar}</p>;
  }
}`,
			options:  []any{"always", map[string]any{"props": "never"}},
			expected: []string{"Must never use destructuring props assignment", "Must use destructuring state assignment"},
		},
		{
			name: "class fields are checked by default",
			src: `class Foo extends Inferno.Component {
  bar = this.props.bar;
}`,
			expected: []string{"Must use destructuring props assignment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings := runRule(t, &rules.DestructuringAssignmentRule{}, tt.src, tt.options...)
			assert.Equal(t, tt.expected, messages(findings))
		})
	}
}

func TestDestructuringAssignmentRule_Position(t *testing.T) {
	t.Parallel()

	src := `const MyComponent = (props) => {
  return <div id={props.id} />;
};`
	findings := runRule(t, &rules.DestructuringAssignmentRule{}, src)
	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].GetLineNumber())
	assert.Equal(t, 19, findings[0].GetColumnNumber())
	assert.Equal(t, "MemberExpression", findings[0].NodeType)
}
