package webgpu

// WGSL compute shaders for the layer kernels.
// Using string constants instead of embed for simplicity.

// workgroupSize is the number of threads per workgroup of 1D dispatches.
const workgroupSize = 256

// tileSize is the edge of the 2D workgroup used by the window kernels.
const tileSize = 8

// Post-activation codes shared by every shader. They match cpu.ActivationKind.
const postActivationWGSL = `
fn post(kind: u32, slope: f32, x: f32) -> f32 {
    if (kind == 1u) {
        return max(x, 0.0);
    }
    if (kind == 2u && x < 0.0) {
        return x * slope;
    }
    if (kind == 3u) {
        return 1.0 / (1.0 + exp(-x));
    }
    if (kind == 4u) {
        return tanh(x);
    }
    return x;
}
`

// conv2dShader performs a square convolution with virtual zero padding.
// Input:  [in_channels, in_size, in_size].
// Kernel: [out_channels, in_channels, k, k].
// Output: [out_channels, out_size, out_size].
// One invocation computes one output cell; z indexes the output channel.
const conv2dShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read> kernel: array<f32>;
@group(0) @binding(2) var<storage, read> bias: array<f32>;
@group(0) @binding(3) var<storage, read_write> output: array<f32>;

struct Params {
    out_size: u32,
    in_size: u32,
    kernel_size: u32,
    in_channels: u32,
    out_channels: u32,
    stride: u32,
    padding: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let f = global_id.z;
    let r = global_id.y;
    let c = global_id.x;
    if (f >= params.out_channels || r >= params.out_size || c >= params.out_size) {
        return;
    }

    let k = params.kernel_size;
    let n = params.in_size;
    let row0 = i32(r * params.stride) - i32(params.padding);
    let col0 = i32(c * params.stride) - i32(params.padding);

    var value: f32 = bias[f];
    for (var ch: u32 = 0u; ch < params.in_channels; ch = ch + 1u) {
        var acc: f32 = 0.0;
        for (var kr: u32 = 0u; kr < k; kr = kr + 1u) {
            let ri = row0 + i32(kr);
            if (ri < 0 || ri >= i32(n)) {
                continue;
            }
            for (var kc: u32 = 0u; kc < k; kc = kc + 1u) {
                let ci = col0 + i32(kc);
                if (ci < 0 || ci >= i32(n)) {
                    continue;
                }
                let in_idx = (ch * n + u32(ri)) * n + u32(ci);
                let k_idx = ((f * params.in_channels + ch) * k + kr) * k + kc;
                acc = acc + input[in_idx] * kernel[k_idx];
            }
        }
        value = value + acc;
    }

    output[(f * params.out_size + r) * params.out_size + c] = value;
}
`

// deconv2dShader performs a square transposed convolution in gather form:
// every output cell collects the input cells whose scatter lands on it.
// Kernel: [in_channels, out_channels, k, k].
const deconv2dShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read> kernel: array<f32>;
@group(0) @binding(2) var<storage, read> bias: array<f32>;
@group(0) @binding(3) var<storage, read_write> output: array<f32>;

struct Params {
    out_size: u32,
    in_size: u32,
    kernel_size: u32,
    in_channels: u32,
    out_channels: u32,
    stride: u32,
    padding: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let f = global_id.z;
    let r = global_id.y;
    let c = global_id.x;
    if (f >= params.out_channels || r >= params.out_size || c >= params.out_size) {
        return;
    }

    let k = params.kernel_size;
    let n = i32(params.in_size);
    let s = i32(params.stride);

    var value: f32 = bias[f];
    for (var ch: u32 = 0u; ch < params.in_channels; ch = ch + 1u) {
        for (var kr: u32 = 0u; kr < k; kr = kr + 1u) {
            let rs = i32(r) + i32(params.padding) - i32(kr);
            if (rs < 0 || rs % s != 0 || rs / s >= n) {
                continue;
            }
            for (var kc: u32 = 0u; kc < k; kc = kc + 1u) {
                let cs = i32(c) + i32(params.padding) - i32(kc);
                if (cs < 0 || cs % s != 0 || cs / s >= n) {
                    continue;
                }
                let in_idx = (ch * u32(n) + u32(rs / s)) * u32(n) + u32(cs / s);
                let k_idx = ((ch * params.out_channels + f) * k + kr) * k + kc;
                value = value + input[in_idx] * kernel[k_idx];
            }
        }
    }

    output[(f * params.out_size + r) * params.out_size + c] = value;
}
`

// pool2dShader performs max (mode 0) or average (mode 1) pooling with a
// fused post-activation. Average pooling divides by the full window area.
const pool2dShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> output: array<f32>;

struct Params {
    out_size: u32,
    in_size: u32,
    kernel_size: u32,
    channels: u32,
    stride: u32,
    padding: u32,
    mode: u32,
    post_kind: u32,
    slope: f32,
}
@group(0) @binding(2) var<uniform> params: Params;
` + postActivationWGSL + `
@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let ch = global_id.z;
    let r = global_id.y;
    let c = global_id.x;
    if (ch >= params.channels || r >= params.out_size || c >= params.out_size) {
        return;
    }

    let k = params.kernel_size;
    let n = params.in_size;
    let row0 = i32(r * params.stride) - i32(params.padding);
    let col0 = i32(c * params.stride) - i32(params.padding);

    var best: f32 = -3.402823e+38; // -FLT_MAX
    var sum: f32 = 0.0;
    for (var kr: u32 = 0u; kr < k; kr = kr + 1u) {
        let ri = row0 + i32(kr);
        if (ri < 0 || ri >= i32(n)) {
            continue;
        }
        for (var kc: u32 = 0u; kc < k; kc = kc + 1u) {
            let ci = col0 + i32(kc);
            if (ci < 0 || ci >= i32(n)) {
                continue;
            }
            let v = input[(ch * n + u32(ri)) * n + u32(ci)];
            best = max(best, v);
            sum = sum + v;
        }
    }

    var value = best;
    if (params.mode == 1u) {
        value = sum / f32(k * k);
    }
    output[(ch * params.out_size + r) * params.out_size + c] = post(params.post_kind, params.slope, value);
}
`

// activationShader applies an element-wise activation.
const activationShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> output: array<f32>;

struct Params {
    size: u32,
    kind: u32,
    slope: f32,
}
@group(0) @binding(2) var<uniform> params: Params;
` + postActivationWGSL + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        output[idx] = post(params.kind, params.slope, input[idx]);
    }
}
`
