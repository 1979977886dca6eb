//go:build opencl

package compute

// kernelSource mirrors package stencil in OpenCL C. Every kernel takes the
// CTCS_PARAMS scalar block first, followed by its buffers.
const kernelSource = `
#define CTCS_PARAMS \
    const int nx, const int ny, \
    const float dx, const float dy, const float dt, \
    const float g, const float f, const float r, const float A, \
    const int closed_ew, const int closed_ns, \
    const int wind_type, const float tau0, const float rho, const float alpha, \
    const float xm, const float Rc, const float x0, const float y0, \
    const float u0, const float v0, const float ramp, const float t

#define MIN_DEPTH 1.0e-3f

enum { WIND_NONE, WIND_UNIFORM, WIND_BELL, WIND_RAMPED, WIND_CYCLONE };

inline float ramp_factor(float ramp, float t) {
    if (ramp <= 0.0f || t >= ramp) {
        return 1.0f;
    }
    if (t <= 0.0f) {
        return 0.0f;
    }
    return t / ramp;
}

inline float wind_x(int type, float tau0, float rho, float alpha, float xm, float Rc,
                    float x0, float y0, float u0, float v0, float ramp,
                    float x, float y, float t, float dt) {
    switch (type) {
    case WIND_UNIFORM:
        return tau0 / rho * exp(-alpha * y);
    case WIND_BELL:
        if (t > 48.0f * 3600.0f) {
            return 0.0f;
        }
        {
            const float a = alpha * (x - xm);
            return tau0 / rho * exp(-a * a) * exp(-alpha * y);
        }
    case WIND_RAMPED:
        return tau0 / rho * ramp_factor(ramp, t) * exp(-alpha * y);
    case WIND_CYCLONE:
        {
            const float a = x - x0 - u0 * (t + dt);
            const float b = y - y0 - v0 * (t + dt);
            const float c = 1.0f - sqrt(a * a + b * b) / Rc;
            return -(tau0 / rho) * (b / Rc) * exp(-0.5f * c * c);
        }
    }
    return 0.0f;
}

inline float wind_y(int type, float tau0, float rho, float Rc,
                    float x0, float y0, float u0, float v0,
                    float x, float y, float t, float dt) {
    if (type != WIND_CYCLONE) {
        return 0.0f;
    }
    const float a = x - x0 - u0 * (t + dt);
    const float b = y - y0 - v0 * (t + dt);
    const float c = 1.0f - sqrt(a * a + b * b) / Rc;
    return (tau0 / rho) * (a / Rc) * exp(-0.5f * c * c);
}

inline int u_face_updated(int x, int y, int nx, int ny, int closed_ew) {
    if (y < 1 || y > ny || x < 1 || x > nx) {
        return 0;
    }
    return !closed_ew || x < nx;
}

inline int v_face_updated(int x, int y, int nx, int ny, int closed_ns) {
    if (x < 1 || x > nx || y < 1 || y > ny) {
        return 0;
    }
    return !closed_ns || y < ny;
}

__kernel void ctcs_eta(CTCS_PARAMS,
        __global float* eta0,
        __global const float* hu1,
        __global const float* hv1)
{
    const int x = get_global_id(0);
    const int y = get_global_id(1);
    if (x < 1 || x > nx || y < 1 || y > ny) {
        return;
    }
    const int ew = nx + 2;
    const int uw = nx + 1;
    const float dU = hu1[y * uw + x] - hu1[y * uw + x - 1];
    const float dV = hv1[y * ew + x] - hv1[(y - 1) * ew + x];
    eta0[y * ew + x] = eta0[y * ew + x] - 2.0f * dt * (dU / dx + dV / dy);
}

__kernel void ctcs_laplacian_u(CTCS_PARAMS,
        __global const float* hu0,
        __global float* lap)
{
    const int x = get_global_id(0);
    const int y = get_global_id(1);
    if (!u_face_updated(x, y, nx, ny, closed_ew)) {
        return;
    }
    const int uw = nx + 1;
    const int xe = (x == nx) ? 1 : x + 1;
    const float c = hu0[y * uw + x];
    const float dxx = (hu0[y * uw + xe] - 2.0f * c + hu0[y * uw + x - 1]) / (dx * dx);
    const float dyy = (hu0[(y + 1) * uw + x] - 2.0f * c + hu0[(y - 1) * uw + x]) / (dy * dy);
    lap[y * uw + x] = dxx + dyy;
}

__kernel void ctcs_u(CTCS_PARAMS,
        __global const float* H,
        __global const float* eta1,
        __global float* hu0,
        __global const float* hv1,
        __global const float* lap)
{
    const int x = get_global_id(0);
    const int y = get_global_id(1);
    if (!u_face_updated(x, y, nx, ny, closed_ew)) {
        return;
    }
    const int ew = nx + 2;
    const int uw = nx + 1;
    const float eta_m = eta1[y * ew + x];
    const float eta_p = eta1[y * ew + x + 1];
    const float depth = 0.5f * (H[y * ew + x] + H[y * ew + x + 1]) + 0.5f * (eta_m + eta_p);

    const float P = -g * fmax(depth, 0.0f) * (eta_p - eta_m) / dx;
    const float V_bar = 0.25f * (hv1[y * ew + x] + hv1[y * ew + x + 1]
                               + hv1[(y - 1) * ew + x] + hv1[(y - 1) * ew + x + 1]);
    const float E = (A != 0.0f) ? A * lap[y * uw + x] : 0.0f;
    const float X = wind_x(wind_type, tau0, rho, alpha, xm, Rc, x0, y0, u0, v0, ramp,
                           x * dx, (y - 0.5f) * dy, t, dt);

    const float C = r * dt / fmax(depth, MIN_DEPTH);
    const float U0 = hu0[y * uw + x];
    hu0[y * uw + x] = ((1.0f - C) * U0 + 2.0f * dt * (f * V_bar + P + E + X)) / (1.0f + C);
}

__kernel void ctcs_laplacian_v(CTCS_PARAMS,
        __global const float* hv0,
        __global float* lap)
{
    const int x = get_global_id(0);
    const int y = get_global_id(1);
    if (!v_face_updated(x, y, nx, ny, closed_ns)) {
        return;
    }
    const int ew = nx + 2;
    const int yn = (y == ny) ? 1 : y + 1;
    const float c = hv0[y * ew + x];
    const float dxx = (hv0[y * ew + x + 1] - 2.0f * c + hv0[y * ew + x - 1]) / (dx * dx);
    const float dyy = (hv0[yn * ew + x] - 2.0f * c + hv0[(y - 1) * ew + x]) / (dy * dy);
    lap[y * ew + x] = dxx + dyy;
}

__kernel void ctcs_v(CTCS_PARAMS,
        __global const float* H,
        __global const float* eta1,
        __global const float* hu1,
        __global float* hv0,
        __global const float* lap)
{
    const int x = get_global_id(0);
    const int y = get_global_id(1);
    if (!v_face_updated(x, y, nx, ny, closed_ns)) {
        return;
    }
    const int ew = nx + 2;
    const int uw = nx + 1;
    const float eta_m = eta1[y * ew + x];
    const float eta_p = eta1[(y + 1) * ew + x];
    const float depth = 0.5f * (H[y * ew + x] + H[(y + 1) * ew + x]) + 0.5f * (eta_m + eta_p);

    const float P = -g * fmax(depth, 0.0f) * (eta_p - eta_m) / dy;
    const float U_bar = 0.25f * (hu1[y * uw + x - 1] + hu1[y * uw + x]
                               + hu1[(y + 1) * uw + x - 1] + hu1[(y + 1) * uw + x]);
    const float E = (A != 0.0f) ? A * lap[y * ew + x] : 0.0f;
    const float Y = wind_y(wind_type, tau0, rho, Rc, x0, y0, u0, v0,
                           (x - 0.5f) * dx, y * dy, t, dt);

    const float C = r * dt / fmax(depth, MIN_DEPTH);
    const float V0 = hv0[y * ew + x];
    hv0[y * ew + x] = ((1.0f - C) * V0 + 2.0f * dt * (-f * U_bar + P + E + Y)) / (1.0f + C);
}
`
