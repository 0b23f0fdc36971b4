package rules_test

import (
	"strings"
	"testing"

	"github.com/speakeasy-api/jsxlint/jsx/linter/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	staticTypoMessage    = "Typo in static class property declaration"
	lifecycleTypoMessage = "Typo in component lifecycle method declaration"
)

func TestNoTyposRule_ValidCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{
			name: "correct static properties",
			src: `class First extends Inferno.Component {
  static propTypes = { a: 1 };
  static contextTypes = {};
  static childContextTypes = {};
  static defaultProps = {};
}`,
		},
		{
			name: "misspelled names outside components",
			src: `class First {
  static PropTypes = { key: "myValue" };
  static ContextTypes = { key: "myValue" };
  static ChildContextTypes = { key: "myValue" };
  static DefaultProps = { key: "myValue" };
  ComponentDidMount() {}
}
First.PropTypes = {};`,
		},
		{
			name: "correct member assignments",
			src: `class First extends Inferno.Component {}
First.propTypes = {};
First.contextTypes = {};
First.childContextTypes = {};
First.defaultProps = {};`,
		},
		{
			name: "prototype assignment",
			src: `class First extends Inferno.Component {}
First.prototype.PropTypes = {};`,
		},
		{
			name: "plain function",
			src: `function myFunction() {}
myFunction.PropTypes = {};`,
		},
		{
			name: "computed key",
			src: `class First extends Inferno.Component {}
First["PropTypes"] = {};`,
		},
		{
			name: "correct lifecycle methods",
			src: `class Hello extends Inferno.Component {
  static getDerivedStateFromProps() {}
  componentWillMount() {}
  UNSAFE_componentWillMount() {}
  componentDidMount() {}
  componentWillReceiveProps() {}
  UNSAFE_componentWillReceiveProps() {}
  shouldComponentUpdate() {}
  componentWillUpdate() {}
  UNSAFE_componentWillUpdate() {}
  getSnapshotBeforeUpdate() {}
  componentDidUpdate() {}
  componentDidCatch() {}
  componentWillUnmount() {}
  render() {
    return <div>Hello {this.props.name}</div>;
  }
}`,
		},
		{
			name: "unrelated names",
			src: `class Hello extends Inferno.Component {
  static foo = 1;
  handleClick() {}
}
Hello.displayName = "Hello";`,
		},
		{
			name: "shadowed component name",
			src: `class First extends Inferno.Component {}
function configure(First) {
  First.PropTypes = {};
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings := runRule(t, &rules.NoTyposRule{}, tt.src)
			assert.Empty(t, findings)
		})
	}
}

func TestNoTyposRule_StaticProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		count int
	}{
		{
			name:  "static PropTypes",
			src:   `class Component extends Inferno.Component { static PropTypes = {}; }`,
			count: 1,
		},
		{
			name: "every lowercase variant",
			src: `class Component extends Inferno.Component {
  static proptypes = {};
  static contexttypes = {};
  static childcontexttypes = {};
  static defaultprops = {};
}`,
			count: 4,
		},
		{
			name: "member assignment",
			src: `class Component extends Inferno.Component {}
Component.PropTypes = {};`,
			count: 1,
		},
		{
			name: "member assignment on an SFC",
			src: `function MyComponent() { return (<div>{this.props.myProp}</div>) }
MyComponent.PropTypes = {};`,
			count: 1,
		},
		{
			name: "member assignment on an arrow SFC",
			src: `const MyComponent = (props) => <div>{props.name}</div>;
MyComponent.DefaultProps = {};`,
			count: 1,
		},
		{
			name: "assignment before the declaration",
			src: `Component.defaultprops = {};
class Component extends Inferno.Component {}`,
			count: 1,
		},
		{
			name: "jsdoc extends",
			src: `/** @extends Inferno.Component */
class MyComponent extends BaseComponent {}
MyComponent.PROPTYPES = {};`,
			count: 1,
		},
		{
			name: "exported class with jsdoc augments",
			src: `/**
 * @augments {Inferno.PureComponent}
 */
export default class MyComponent extends BaseComponent {
  static ContextTypes = {};
}`,
			count: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings := runRule(t, &rules.NoTyposRule{}, tt.src)
			assert.Equal(t, repeat(staticTypoMessage, tt.count), messages(findings))
		})
	}
}

func TestNoTyposRule_LifecycleMethods(t *testing.T) {
	t.Parallel()

	src := `class Hello extends Inferno.Component {
  static GetDerivedStateFromProps() {}
  ComponentWillMount() {}
  UNSAFE_ComponentWillMount() {}
  ComponentDidMount() {}
  ComponentWillReceiveProps() {}
  ShouldComponentUpdate() {}
  ComponentWillUpdate() {}
  GetSnapshotBeforeUpdate() {}
  ComponentDidUpdate() {}
  ComponentDidCatch() {}
  ComponentWillUnmount() {}
  Render() {
    return <div>Hello {this.props.name}</div>;
  }
}`
	findings := runRule(t, &rules.NoTyposRule{}, src)
	require.Len(t, findings, 12)
	for i, f := range findings {
		assert.Equal(t, lifecycleTypoMessage, f.Message())
		assert.Equal(t, "MethodDefinition", f.NodeType)
		assert.Equal(t, i+2, f.GetLineNumber())
		assert.Equal(t, 3, f.GetColumnNumber())
	}
}

func TestNoTyposRule_LowercaseLifecycleMethods(t *testing.T) {
	t.Parallel()

	names := []string{
		"getderivedstatefromprops",
		"componentwillmount",
		"componentdidmount",
		"componentwillreceiveprops",
		"shouldcomponentupdate",
		"componentwillupdate",
		"getsnapshotbeforeupdate",
		"componentdidupdate",
		"componentdidcatch",
		"componentwillunmount",
	}

	var src strings.Builder
	src.WriteString("class Hello extends Inferno.Component {\n")
	for _, name := range names {
		src.WriteString("  " + name + "() {}\n")
	}
	src.WriteString("  render() { return <div />; }\n}")

	findings := runRule(t, &rules.NoTyposRule{}, src.String())
	assert.Equal(t, repeat(lifecycleTypoMessage, len(names)), messages(findings))
}
