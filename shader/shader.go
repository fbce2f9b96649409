package shader

// Stage names a programmable pipeline stage. The values match the stage
// names the shader translator expects.
type Stage string

const (
	Vertex   Stage = "vertex"
	Fragment Stage = "fragment"
)

// Attribute and uniform names shared between the sources below and the renderer.
const (
	AttribPos         = "a_pos"
	AttribColor       = "a_color"
	UniformTime       = "u_time"
	UniformCursor     = "u_cursor"
	UniformResolution = "iResolution"
)

// ───────────────────────────────── WebGL2 sources ─────────────────────────────────

const vertexShaderSource = `#version 300 es
precision highp float;

in vec2 a_pos;
in vec3 a_color;

out vec3 f_color;

void main() {
    gl_Position = vec4(a_pos, 0.0, 1.0);
    f_color = a_color;
}
`

const fragmentShaderSource = `#version 300 es
precision mediump float;

uniform float u_time;
uniform vec2  u_cursor;
uniform vec2  iResolution;

in vec3 f_color;
out vec4 FragColor;

vec3 palette(float t) {
    vec3 a = vec3(1.0, 0.5, 0.5);
    vec3 b = vec3(0.5, 1.0, 0.5);
    vec3 c = vec3(1.0, 1.0, 1.0);
    vec3 d = vec3(0.263, 0.416, 0.557);

    return a + b * cos(6.28318 * (c * t + d));
}

void mainImage(out vec4 fragColor, in vec2 fragCoord) {
    vec2 uv = (fragCoord * 2.0 - iResolution) / min(iResolution.y, iResolution.x);

    vec2 uv0 = uv;
    vec3 finalColor = vec3(0.0);

    for (float i = 0.0; i < 2.0; i++) {
        uv = fract(uv * 1.5) - 0.5;

        float d = length(uv) * exp(-length(uv0));

        vec3 col = palette(length(uv0) + i * 0.4 + u_time * 0.4);

        d = sin(d * 8.0 + u_time) / 8.0;
        d = abs(d);

        d = pow(0.02 / d, 2.0);

        finalColor += col * d;
    }

    fragColor = vec4(finalColor, 1.0);
}

void main() {
    mainImage(FragColor, gl_FragCoord.xy);
}
`

// Source returns the WebGL2 source text for a stage. The vertex stage
// forwards a_pos as the clip-space position and a_color as a varying; the
// fragment stage is the palette folding field.
func Source(stage Stage) string {
	if stage == Vertex {
		return vertexShaderSource
	}
	return fragmentShaderSource
}
