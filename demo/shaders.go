package demo

const triangleVertexShader = `
#version 330 core

in vec2 VertexPosition;

void main() {
	gl_Position = vec4(VertexPosition, 0, 1);
}
`

const triangleFragmentShader = `
#version 330 core

uniform vec4 Color;

out vec4 OutputColor;

void main() {
	OutputColor = Color;
}
`

const quadVertexShader = `
#version 330 core

uniform float Time;

in vec2 VertexPosition;
in vec3 VertexColor;

out vec3 FragmentColor;

void main() {
	float pulse = 0.75 + 0.25 * sin(Time * 2.0);
	FragmentColor = VertexColor * pulse;
	gl_Position = vec4(VertexPosition * pulse, 0, 1);
}
`

const quadFragmentShader = `
#version 330 core

in  vec3 FragmentColor;
out vec4 OutputColor;

void main() {
	OutputColor = vec4(FragmentColor, 1);
}
`

const latheVertexShader = `
#version 330 core

uniform mat4 ProjectionMatrix;
uniform mat4 CameraMatrix;
uniform vec3 DiffuseLightPosition;

in vec3 VertexPosition;
in vec3 VertexNormal;

out vec3 FragmentColor;

void main() {
	vec4 position = CameraMatrix * vec4(VertexPosition, 1);
	gl_Position = ProjectionMatrix * position;

	vec3 normal = normalize(mat3(CameraMatrix) * VertexNormal);
	vec3 light = normalize((CameraMatrix * vec4(DiffuseLightPosition, 1)).xyz - position.xyz);
	float diffuseShade = clamp(dot(normal, light), 0.0, 1.0);

	vec3 albedo = vec3(0.9, 0.6, 0.3);
	float ambientLight = 0.3;
	FragmentColor = albedo * (ambientLight + diffuseShade);
}
`

const latheFragmentShader = `
#version 330 core

in  vec3 FragmentColor;
out vec4 OutputColor;

void main() {
	OutputColor = vec4(FragmentColor, 1);
}
`
