package renderer

const versionHeader = "#version 330 core\n"

const vertexHeader = versionHeader +
	"#if __VERSION__ < 130\n" +
	"#define in attribute\n" +
	"#define out varying\n" +
	"#endif  // __VERSION__ < 130\n"

const fragmentHeader = versionHeader +
	"#if __VERSION__ < 130\n" +
	"  #define in varying\n" +
	"  #define texture texture2D\n" +
	"#endif  // __VERSION__ < 130\n" +
	"#ifdef GL_ES\n" +
	"  precision highp float;\n" +
	"#else\n" +
	"  #define lowp\n" +
	"  #define mediump\n" +
	"  #define highp\n" +
	"  #define texture2D texture\n" +
	"  out vec4 frag_out; \n" +
	"  #define gl_FragColor frag_out\n" +
	"#endif  // defined(GL_ES)\n"

// VertexShader prefixes GLSL vertex code with the version line and the
// in/out compatibility defines.
func VertexShader(code string) string {
	return vertexHeader + code
}

// FragmentShader prefixes GLSL fragment code with the version line and
// maps gl_FragColor to an output variable on core profiles.
func FragmentShader(code string) string {
	return fragmentHeader + code
}
