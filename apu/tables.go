package apu

// Non-linear DAC approximations for the two mixer groups. pulseTable is
// indexed by pulse1+pulse2, tndTable by 3*triangle+2*noise+dmc.
//
// https://www.nesdev.org/wiki/APU_Mixer
var pulseTable = [31]float32{
	0, 0.01160914, 0.022939481, 0.034000949, 0.044803002, 0.055354659,
	0.065664528, 0.075740825, 0.085591398, 0.095223748, 0.10464505, 0.11386216,
	0.12288165, 0.1317098, 0.14035264, 0.14881595, 0.15710526, 0.16522589,
	0.17318292, 0.18098125, 0.18862559, 0.19612045, 0.20347018, 0.21067894,
	0.21775076, 0.2246895, 0.23149888, 0.23818249, 0.24474378, 0.25118607,
	0.25751258,
}

var tndTable = [203]float32{
	0, 0.006699824, 0.01334502, 0.019936254, 0.02647418, 0.032959443,
	0.039392675, 0.045774502, 0.052105535, 0.058386381, 0.064617632, 0.070799874,
	0.076933683, 0.083019626, 0.089058261, 0.095050137, 0.1009958, 0.10689577,
	0.11275058, 0.11856075, 0.12432679, 0.13004919, 0.13572845, 0.14136505,
	0.14695948, 0.15251221, 0.15802369, 0.16349439, 0.16892477, 0.17431525,
	0.17966629, 0.18497831, 0.19025173, 0.19548699, 0.20068448, 0.20584462,
	0.21096781, 0.21605444, 0.22110491, 0.22611959, 0.23109887, 0.23604312,
	0.24095271, 0.24582801, 0.25066936, 0.25547712, 0.26025165, 0.26499328,
	0.26970236, 0.27437921, 0.27902417, 0.28363757, 0.28821972, 0.29277093,
	0.29729153, 0.30178182, 0.30624211, 0.31067268, 0.31507385, 0.3194459,
	0.32378911, 0.32810378, 0.33239019, 0.3366486, 0.3408793, 0.34508255,
	0.34925862, 0.35340778, 0.35753028, 0.36162637, 0.36569632, 0.36974037,
	0.37375876, 0.37775175, 0.38171956, 0.38566245, 0.38958063, 0.39347435,
	0.39734383, 0.4011893, 0.40501098, 0.40880909, 0.41258385, 0.41633547,
	0.42006416, 0.42377014, 0.42745361, 0.43111478, 0.43475384, 0.438371,
	0.44196646, 0.4455404, 0.44909302, 0.45262452, 0.45613508, 0.45962488,
	0.46309411, 0.46654295, 0.46997158, 0.47338017, 0.47676891, 0.48013797,
	0.4834875, 0.4868177, 0.49012871, 0.49342071, 0.49669386, 0.49994833,
	0.50318426, 0.50640183, 0.50960118, 0.51278247, 0.51594585, 0.51909147,
	0.52221949, 0.52533004, 0.52842328, 0.53149935, 0.53455839, 0.53760054,
	0.54062595, 0.54363474, 0.54662706, 0.54960305, 0.55256283, 0.55550653,
	0.55843429, 0.56134624, 0.56424251, 0.56712321, 0.56998848, 0.57283844,
	0.57567321, 0.57849292, 0.58129768, 0.5840876, 0.58686282, 0.58962345,
	0.59236959, 0.59510136, 0.59781888, 0.60052226, 0.60321161, 0.60588703,
	0.60854863, 0.61119653, 0.61383082, 0.61645161, 0.61905901, 0.62165311,
	0.62423403, 0.62680185, 0.62935667, 0.63189861, 0.63442775, 0.63694419,
	0.63944802, 0.64193934, 0.64441825, 0.64688483, 0.64933919, 0.65178139,
	0.65421155, 0.65662975, 0.65903607, 0.6614306, 0.66381343, 0.66618465,
	0.66854434, 0.67089258, 0.67322945, 0.67555505, 0.67786944, 0.68017272,
	0.68246495, 0.68474623, 0.68701662, 0.68927621, 0.69152508, 0.69376329,
	0.69599093, 0.69820807, 0.70041478, 0.70261113, 0.70479721, 0.70697308,
	0.70913881, 0.71129448, 0.71344014, 0.71557589, 0.71770177, 0.71981786,
	0.72192423, 0.72402095, 0.72610807, 0.72818568, 0.73025382, 0.73231257,
	0.73436198, 0.73640213, 0.73843308, 0.74045488, 0.74246761,
}

// Length counter loads, indexed by the top 5 bits of the length register.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

var triangleTable = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// NTSC noise periods, in CPU cycles.
var noisePeriods = [16]int{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// NTSC DMC rates, in CPU cycles per output bit.
var dmcRates = [16]int{
	428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54,
}
